// Package tv fetches live status from the HTTP agent running on TVs.
package tv
