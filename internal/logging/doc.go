// Package logging builds the zap logger shared by every gradproj command.
//
// The logger is configured from config.LogConfig: Level selects the minimum
// enabled level (debug, info, warn, error) and Format selects between the
// production JSON encoder and a human-oriented console encoder. Commands
// pass the resulting *zap.Logger down to services and jobs explicitly; there
// is no package-level global.
package logging
