// Package cli constructs the docaudit command-line interface, wiring the Cobra
// command hierarchy, the Viper configuration loader with its embedded defaults,
// and zap logging. Execute runs the default command set.
package cli
