package taxonomy

import "github.com/sells-group/statements/internal/model"

// defaultConcepts is the built-in generic mapping table covering the US-GAAP
// concepts most filers report. Industry override tables and filer extension
// aliases are layered on top via Load.
var defaultConcepts = map[string]*Concept{
	// Income statement
	"Revenue": {
		Label:     "Revenue",
		Statement: model.StatementIncome,
		Order:     200,
		Aliases: []string{
			"us-gaap:Revenues",
			"us-gaap:RevenueFromContractWithCustomerExcludingAssessedTax",
			"us-gaap:RevenueFromContractWithCustomerIncludingAssessedTax",
			"us-gaap:SalesRevenueNet",
		},
		ScaleAnchor: true,
	},
	"Cost of Revenue": {
		Label:     "Cost of revenue",
		Statement: model.StatementIncome,
		Order:     210,
		Aliases: []string{
			"us-gaap:CostOfRevenue",
			"us-gaap:CostOfGoodsAndServicesSold",
			"us-gaap:CostOfGoodsSold",
		},
	},
	"Gross Profit": {
		Label:     "Gross profit",
		Statement: model.StatementIncome,
		Order:     220,
		Aliases:   []string{"us-gaap:GrossProfit"},
	},
	"Research and Development Expense": {
		Label:     "Research and development",
		Statement: model.StatementIncome,
		Order:     230,
		Aliases:   []string{"us-gaap:ResearchAndDevelopmentExpense"},
	},
	"Selling, General and Administrative Expense": {
		Label:     "Selling, general and administrative",
		Statement: model.StatementIncome,
		Order:     240,
		Aliases: []string{
			"us-gaap:SellingGeneralAndAdministrativeExpense",
			"us-gaap:GeneralAndAdministrativeExpense",
		},
	},
	"Operating Expenses": {
		Label:     "Total operating expenses",
		Statement: model.StatementIncome,
		Order:     250,
		Aliases:   []string{"us-gaap:OperatingExpenses", "us-gaap:CostsAndExpenses"},
	},
	"Operating Income": {
		Label:     "Operating income",
		Statement: model.StatementIncome,
		Order:     260,
		Aliases:   []string{"us-gaap:OperatingIncomeLoss"},
	},
	"Interest Expense": {
		Label:     "Interest expense",
		Statement: model.StatementIncome,
		Order:     270,
		Aliases:   []string{"us-gaap:InterestExpense", "us-gaap:InterestExpenseNonoperating"},
	},
	"Income Tax Expense": {
		Label:     "Provision for income taxes",
		Statement: model.StatementIncome,
		Order:     280,
		Aliases:   []string{"us-gaap:IncomeTaxExpenseBenefit"},
	},
	"Net Income": {
		Label:     "Net income",
		Statement: model.StatementIncome,
		Order:     290,
		Aliases: []string{
			"us-gaap:NetIncomeLoss",
			"us-gaap:ProfitLoss",
			"us-gaap:NetIncomeLossAvailableToCommonStockholdersBasic",
		},
		ScaleAnchor: true,
	},
	"Earnings Per Share, Basic": {
		Label:     "Earnings per share, basic",
		Statement: model.StatementIncome,
		Order:     300,
		Aliases:   []string{"us-gaap:EarningsPerShareBasic"},
		PerShare:  true,
	},
	"Earnings Per Share, Diluted": {
		Label:     "Earnings per share, diluted",
		Statement: model.StatementIncome,
		Order:     310,
		Aliases:   []string{"us-gaap:EarningsPerShareDiluted"},
		PerShare:  true,
	},

	// Balance sheet
	"Cash and Cash Equivalents": {
		Label:     "Cash and cash equivalents",
		Statement: model.StatementBalanceSheet,
		Order:     100,
		Aliases: []string{
			"us-gaap:CashAndCashEquivalentsAtCarryingValue",
			"us-gaap:CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents",
		},
	},
	"Accounts Receivable": {
		Label:     "Accounts receivable, net",
		Statement: model.StatementBalanceSheet,
		Order:     110,
		Aliases:   []string{"us-gaap:AccountsReceivableNetCurrent"},
	},
	"Inventory": {
		Label:     "Inventory",
		Statement: model.StatementBalanceSheet,
		Order:     120,
		Aliases:   []string{"us-gaap:InventoryNet"},
	},
	"Total Current Assets": {
		Label:     "Total current assets",
		Statement: model.StatementBalanceSheet,
		Order:     130,
		Aliases:   []string{"us-gaap:AssetsCurrent"},
	},
	"Property, Plant and Equipment": {
		Label:     "Property, plant and equipment, net",
		Statement: model.StatementBalanceSheet,
		Order:     140,
		Aliases:   []string{"us-gaap:PropertyPlantAndEquipmentNet"},
	},
	"Total Assets": {
		Label:       "Total assets",
		Statement:   model.StatementBalanceSheet,
		Order:       150,
		Aliases:     []string{"us-gaap:Assets"},
		ScaleAnchor: true,
	},
	"Accounts Payable": {
		Label:     "Accounts payable",
		Statement: model.StatementBalanceSheet,
		Order:     160,
		Aliases:   []string{"us-gaap:AccountsPayableCurrent"},
	},
	"Total Current Liabilities": {
		Label:     "Total current liabilities",
		Statement: model.StatementBalanceSheet,
		Order:     170,
		Aliases:   []string{"us-gaap:LiabilitiesCurrent"},
	},
	"Long-Term Debt": {
		Label:     "Long-term debt",
		Statement: model.StatementBalanceSheet,
		Order:     180,
		Aliases:   []string{"us-gaap:LongTermDebt", "us-gaap:LongTermDebtNoncurrent"},
	},
	"Total Liabilities": {
		Label:       "Total liabilities",
		Statement:   model.StatementBalanceSheet,
		Order:       190,
		Aliases:     []string{"us-gaap:Liabilities"},
		ScaleAnchor: true,
	},
	"Stockholders Equity": {
		Label:     "Total stockholders' equity",
		Statement: model.StatementBalanceSheet,
		Order:     195,
		Aliases: []string{
			"us-gaap:StockholdersEquity",
			"us-gaap:StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
		},
		ScaleAnchor: true,
	},

	// Cash flow
	"Operating Cash Flow": {
		Label:     "Net cash provided by operating activities",
		Statement: model.StatementCashFlow,
		Order:     400,
		Aliases: []string{
			"us-gaap:NetCashProvidedByUsedInOperatingActivities",
			"us-gaap:NetCashProvidedByUsedInOperatingActivitiesContinuingOperations",
		},
		ScaleAnchor: true,
	},
	"Capital Expenditures": {
		Label:     "Purchases of property and equipment",
		Statement: model.StatementCashFlow,
		Order:     410,
		Aliases: []string{
			"us-gaap:PaymentsToAcquirePropertyPlantAndEquipment",
			"us-gaap:PaymentsToAcquireProductiveAssets",
		},
	},
	"Investing Cash Flow": {
		Label:     "Net cash used in investing activities",
		Statement: model.StatementCashFlow,
		Order:     420,
		Aliases:   []string{"us-gaap:NetCashProvidedByUsedInInvestingActivities"},
	},
	"Financing Cash Flow": {
		Label:     "Net cash used in financing activities",
		Statement: model.StatementCashFlow,
		Order:     430,
		Aliases:   []string{"us-gaap:NetCashProvidedByUsedInFinancingActivities"},
	},
}

// Default returns the built-in generic mapping table with no industry
// overrides. It always indexes cleanly; a failure here is a programming
// error in the table above.
func Default() *Table {
	t, err := build(cloneConcepts(defaultConcepts), map[string]map[string]string{})
	if err != nil {
		panic(err)
	}
	return t
}

func cloneConcepts(src map[string]*Concept) map[string]*Concept {
	out := make(map[string]*Concept, len(src))
	for name, c := range src {
		cc := *c
		cc.Aliases = append([]string(nil), c.Aliases...)
		cc.Children = append([]string(nil), c.Children...)
		out[name] = &cc
	}
	return out
}
