// Package cli implements the eggwms command line.
//
// Commands are package-level cobra commands registered in init. The
// services they drive are set by SetServices before Execute.
package cli
