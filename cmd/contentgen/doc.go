// Package main hosts the contentgen entrypoint.
//
// Architecture overview:
//   - Reference data: locations come from a YAML file (pipeline.locations_file); services are a static catalog
//     in internal/catalog. Every (location, service) pair is one task, identified by its
//     (county_key, town_key, service_key) key.
//   - Resume: the runner snapshots the keys already in the store once, enumerates only the missing combinations
//     and never re-checks the store mid-run. An unreachable store fails the run unless --allow-full-run is set.
//   - Dispatcher: outstanding tasks are fanned out to a bounded pool sized by pipeline.concurrency. One failed task
//     never cancels the others; results are collected per task index.
//   - Generation: each task builds a prompt, calls the configured backend (Anthropic messages API over HTTP or
//     Gemini via the genai SDK), strips a Markdown fence, parses and repairs the JSON record. Rate limits,
//     transport errors, bad output and incomplete records are retried with a linear backoff that doubles on 429.
//   - Persistence & fanout: the stamped record is written with insert-or-ignore semantics (Postgres, SQLite or
//     memory). The write is the source of truth; the optional JSON archive (local/GCS) and Pub/Sub notification
//     only log on failure.
//   - Configuration & plumbing: Viper reads AREAPAGES_* env vars with a .env.local fallback; zap logs go to
//     stderr; Prometheus metrics are served on metrics.listen_addr when set.
//
// Operational notes:
//   - Exit code 0 when every attempted task succeeded, 1 on any task failure, configuration error or empty
//     reference data. The summary (attempted, succeeded, failed, coverage) is printed to stdout on every path.
//   - SIGINT/SIGTERM cancel the run; tasks not yet finished are reported as failed and picked up by the next run.
//   - Pacing: generator.requests_per_second adds a token bucket in front of every API call on top of the
//     concurrency bound.
//
// Quick checklist:
//   - Configure ANTHROPIC_API_KEY (or GEMINI_API_KEY with AREAPAGES_GENERATOR_PROVIDER=gemini) and DATABASE_URL,
//     either in the environment or in .env.local.
//   - Run locally: go run ./cmd/contentgen --limit 10 (use AREAPAGES_STORE_PROVIDER=sqlite with a file DSN for a
//     throwaway store).
package main
