package postgres

import "fmt"

func createTableSQL(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	id              TEXT        NOT NULL,
	county_key      TEXT        NOT NULL,
	town_key        TEXT        NOT NULL,
	service_key     TEXT        NOT NULL,
	narrative       TEXT        NOT NULL,
	faqs            JSONB       NOT NULL,
	deal_example    JSONB       NOT NULL,
	rates           JSONB       NOT NULL,
	seo_title       TEXT        NOT NULL,
	seo_description TEXT        NOT NULL,
	model           TEXT        NOT NULL DEFAULT '',
	generated_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (county_key, town_key, service_key)
)`, table)
}

func selectKeysSQL(table string) string {
	return fmt.Sprintf(`SELECT county_key, town_key, service_key FROM %s`, table)
}

func insertRecordSQL(table string) string {
	return fmt.Sprintf(`
INSERT INTO %s (
	id,
	county_key,
	town_key,
	service_key,
	narrative,
	faqs,
	deal_example,
	rates,
	seo_title,
	seo_description,
	model,
	generated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
)
ON CONFLICT (county_key, town_key, service_key) DO NOTHING`, table)
}
