// Package flags provides pflag helpers shared by docaudit commands: choice
// flags rendered with their allowed values and yes/no toggle flags.
package flags
