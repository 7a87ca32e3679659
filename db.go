package spritepack

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// BuildDB remembers the fingerprint of each exported atlas so unchanged
// atlases can be skipped.
type BuildDB struct {
	db *sql.DB
}

// NewBuildDB opens or creates the sqlite database at file.
func NewBuildDB(file string) (*BuildDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS project (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS build (project_id INTEGER NOT NULL, output TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, updated INTEGER NOT NULL, FOREIGN KEY(project_id) REFERENCES project(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &BuildDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *BuildDB) Close() error {
	return db.db.Close()
}

func (db *BuildDB) addProject(path string) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM project WHERE path = ?", path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO project (path) VALUES (?)", path)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Lookup returns the fingerprint last recorded for output, or an empty
// string if there is none.
func (db *BuildDB) Lookup(output string) (string, error) {
	var sha string
	switch err := db.db.QueryRow("SELECT sha1 FROM build WHERE output = ?", output).Scan(&sha); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return sha, nil
	default:
		return "", err
	}
}

// Record stores the fingerprint of output, exported from project.
func (db *BuildDB) Record(project, output, sha string) error {
	id, err := db.addProject(project)
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO build (project_id, output, sha1, updated) VALUES (?, ?, ?, ?)", id, output, sha, time.Now().Unix()); err != nil {
		return err
	}
	return nil
}

// Outputs returns the outputs recorded for project, sorted by name.
func (db *BuildDB) Outputs(project string) ([]string, error) {
	rows, err := db.db.Query("SELECT b.output FROM build AS b JOIN project AS p ON b.project_id = p.id WHERE p.path = ? ORDER BY b.output", project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []string
	for rows.Next() {
		var output string
		if err := rows.Scan(&output); err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}

	return outputs, rows.Err()
}

// Forget removes everything recorded for project.
func (db *BuildDB) Forget(project string) error {
	if _, err := db.db.Exec("DELETE FROM build WHERE project_id IN (SELECT id FROM project WHERE path = ?)", project); err != nil {
		return err
	}
	if _, err := db.db.Exec("DELETE FROM project WHERE path = ?", project); err != nil {
		return err
	}
	return nil
}
