// Package config manages gradproj configuration.
//
// Configuration starts from built-in defaults, is optionally overlaid by a
// YAML file, and is finally overridden by environment variables:
//
//	cfg, err := config.LoadFile("gradproj.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Configuration Groups
//
//   - LogConfig: level and encoder
//   - AllocationConfig: input tables, output tables, column names, tie-break
//   - TranscriptConfig: PDF directory, output table, worker count
//   - SplitConfig: input table, grouping column, output directory and format
//   - ArchiveConfig: SurrealDB connection for archiving allocation runs
//
// # Environment Variables
//
// Key environment variables:
//
//	LOG_LEVEL                    - debug, info, warn, error (default: info)
//	LOG_FORMAT                   - json or console (default: console)
//	ALLOCATION_USERS_PATH        - users table (default: users.csv)
//	ALLOCATION_PROJECTS_PATH     - projects table (default: projects.csv)
//	ALLOCATION_PREFERENCES_PATH  - preferences table (default: preferences.csv)
//	ALLOCATION_SCORE_COLUMN      - score column of the users table (default: score)
//	ALLOCATION_TIE_BREAK         - id or input (default: id)
//	ALLOCATION_IMPROVE_ONCE      - apply one swap-improvement pass (default: false)
//	TRANSCRIPTS_DIR              - directory of PDF transcripts
//	TRANSCRIPTS_WORKERS          - concurrent PDF extractions (default: 4)
//	SPLIT_INPUT_PATH             - table to split
//	SPLIT_COLUMN                 - grouping column (default: project_id)
//	ARCHIVE_ENABLED              - archive allocation runs in SurrealDB
//	DB_HOST, DB_PORT, DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//
// Validate reports every problem at once using errors.Join.
package config
