package store

import "fmt"

// TechItem is one technology entry on the tech-stack page.
type TechItem struct {
	Name string
	Icon string
	URL  string
}

// TechCategory groups tech items for display.
type TechCategory struct {
	Slug  string
	Name  string
	Items []TechItem
}

// ReplaceTechStacks swaps in a full tech-stack definition. The tech stack is
// authored as one file, so reloads replace everything.
func (db *DB) ReplaceTechStacks(categories []TechCategory) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tech replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM tech_categories"); err != nil {
		return fmt.Errorf("clear tech categories: %w", err)
	}

	for ci, cat := range categories {
		res, err := tx.Exec("INSERT INTO tech_categories (slug, name, sort_order) VALUES (?, ?, ?)",
			cat.Slug, cat.Name, ci)
		if err != nil {
			return fmt.Errorf("insert tech category %q: %w", cat.Slug, err)
		}
		catID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for ii, item := range cat.Items {
			if _, err := tx.Exec("INSERT INTO tech_items (category_id, name, icon, url, sort_order) VALUES (?, ?, ?, ?, ?)",
				catID, item.Name, item.Icon, item.URL, ii); err != nil {
				return fmt.Errorf("insert tech item %q: %w", item.Name, err)
			}
		}
	}

	return tx.Commit()
}

// ListTechCategories returns the tech stack grouped by category, in
// authored order.
func (db *DB) ListTechCategories() ([]TechCategory, error) {
	rows, err := db.conn.Query("SELECT id, slug, name FROM tech_categories ORDER BY sort_order")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	type catRow struct {
		id  int64
		cat TechCategory
	}
	var cats []catRow
	for rows.Next() {
		var c catRow
		if err := rows.Scan(&c.id, &c.cat.Slug, &c.cat.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]TechCategory, 0, len(cats))
	for _, c := range cats {
		itemRows, err := db.conn.Query(
			"SELECT name, icon, url FROM tech_items WHERE category_id = ? ORDER BY sort_order", c.id)
		if err != nil {
			return nil, err
		}
		for itemRows.Next() {
			var item TechItem
			if err := itemRows.Scan(&item.Name, &item.Icon, &item.URL); err != nil {
				_ = itemRows.Close()
				return nil, err
			}
			c.cat.Items = append(c.cat.Items, item)
		}
		if err := itemRows.Err(); err != nil {
			_ = itemRows.Close()
			return nil, err
		}
		if err := itemRows.Close(); err != nil {
			return nil, err
		}
		out = append(out, c.cat)
	}
	return out, nil
}
