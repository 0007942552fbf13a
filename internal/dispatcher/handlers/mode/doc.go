// Package mode provides the vi scope switching commands.
package mode
