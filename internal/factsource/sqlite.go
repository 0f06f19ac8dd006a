package factsource

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/statements/internal/factstore"
	"github.com/sells-group/statements/internal/model"
)

// Archive is a sqlite store of extracted per-filing fact lists, the handoff
// point between the parsing collaborator and this engine. The engine only
// reads; Save exists so the collaborator (and tests) can populate one.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens a sqlite fact archive at the given path and ensures the
// schema exists.
func OpenArchive(dsn string) (*Archive, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "archive: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "archive: exec %s", pragma)
		}
	}
	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

const archiveMigration = `
CREATE TABLE IF NOT EXISTS filings (
	accession  TEXT PRIMARY KEY,
	cik        TEXT NOT NULL DEFAULT '',
	filed      TEXT NOT NULL,
	metadata   TEXT NOT NULL,
	facts      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_filings_cik ON filings(cik);
CREATE INDEX IF NOT EXISTS idx_filings_filed ON filings(filed);
`

func (a *Archive) migrate() error {
	_, err := a.db.Exec(archiveMigration)
	return eris.Wrap(err, "archive: migrate")
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save writes one filing's metadata and fact list, replacing any previous
// row for the same accession.
func (a *Archive) Save(ctx context.Context, filing model.Filing, facts []model.Fact) error {
	meta, err := json.Marshal(fromFiling(filing))
	if err != nil {
		return eris.Wrap(err, "archive: marshal filing")
	}
	wire := make([]factJSON, len(facts))
	for i, f := range facts {
		wire[i] = fromModel(f)
	}
	body, err := json.Marshal(wire)
	if err != nil {
		return eris.Wrap(err, "archive: marshal facts")
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO filings (accession, cik, filed, metadata, facts)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (accession) DO UPDATE SET
			cik = excluded.cik,
			filed = excluded.filed,
			metadata = excluded.metadata,
			facts = excluded.facts`,
		filing.Accession, filing.CIK, filing.Filed.Format(dateFormat), string(meta), string(body))
	return eris.Wrapf(err, "archive: save %s", filing.Accession)
}

// Load reads one filing by accession and builds its fact store.
func (a *Archive) Load(ctx context.Context, accession string) (*factstore.Store, error) {
	var meta, body string
	err := a.db.QueryRowContext(ctx,
		"SELECT metadata, facts FROM filings WHERE accession = ?", accession).Scan(&meta, &body)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("archive: filing %s not found", accession)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "archive: load %s", accession)
	}
	return storeFromRow(meta, body)
}

// LoadEntity reads every filing for a CIK, most recently filed first.
func (a *Archive) LoadEntity(ctx context.Context, cik string) ([]*factstore.Store, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT metadata, facts FROM filings WHERE cik = ?", cik)
	if err != nil {
		return nil, eris.Wrapf(err, "archive: load entity %s", cik)
	}
	defer rows.Close()

	var stores []*factstore.Store
	for rows.Next() {
		var meta, body string
		if err := rows.Scan(&meta, &body); err != nil {
			return nil, eris.Wrap(err, "archive: scan filing")
		}
		s, err := storeFromRow(meta, body)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "archive: iterate filings")
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].Filing().MoreRecentThan(stores[j].Filing())
	})
	return stores, nil
}

func storeFromRow(meta, body string) (*factstore.Store, error) {
	var fj filingJSON
	if err := json.Unmarshal([]byte(meta), &fj); err != nil {
		return nil, eris.Wrap(err, "archive: unmarshal filing metadata")
	}
	filing, err := fj.toModel()
	if err != nil {
		return nil, err
	}

	var wire []factJSON
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return nil, eris.Wrapf(err, "archive: unmarshal facts for %s", filing.Accession)
	}
	facts := make([]model.Fact, 0, len(wire))
	for _, w := range wire {
		f, err := w.toModel()
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return factstore.New(filing, facts)
}
