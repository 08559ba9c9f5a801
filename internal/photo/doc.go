// Package photo re-encodes images and lays out passport photo sheets.
package photo
