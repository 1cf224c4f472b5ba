package ebf

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/MuhammadImtananWali/ebf/raster"
	_ "github.com/mattn/go-sqlite3" // register sqlite3
)

// Catalog is a sqlite database of decoded grids and the files they were
// read from. Each distinct grid is stored once.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens or creates the catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS grid (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, magic INTEGER NOT NULL, height INTEGER NOT NULL, width INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS file (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, grid_id INTEGER NOT NULL, FOREIGN KEY(grid_id) REFERENCES grid(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) addGrid(g *raster.Grid, d digests) (int64, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO grid (sha1, crc, magic, height, width, data) VALUES (?, ?, ?, ?, ?, ?)", d.sha1, d.crc, int(g.Magic), g.Height, g.Width, d.blob); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM grid WHERE sha1 = ?", d.sha1).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Add records that path holds g.
func (c *Catalog) Add(path string, g *raster.Grid) error {
	d, err := digestGrid(g)
	if err != nil {
		return err
	}

	id, err := c.addGrid(g, d)
	if err != nil {
		return err
	}

	if _, err := c.db.Exec("INSERT OR REPLACE INTO file (path, grid_id) VALUES (?, ?)", path, id); err != nil {
		return err
	}
	return nil
}

// Len returns the number of files in the catalog.
func (c *Catalog) Len() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM file").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindIdentical returns the sorted paths of every catalogued file whose
// grid compares identical to g.
func (c *Catalog) FindIdentical(g *raster.Grid) ([]string, error) {
	d, err := digestGrid(g)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.Query("SELECT f.path, g.data FROM file AS f JOIN grid AS g ON f.grid_id = g.id WHERE g.sha1 = ?", d.sha1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		var data []byte
		if err := rows.Scan(&path, &data); err != nil {
			return nil, err
		}

		// Guard against a hash collision
		var stored raster.Grid
		if err := stored.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		if raster.Compare(g, &stored) == raster.Identical {
			paths = append(paths, path)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(paths)

	return paths, nil
}
