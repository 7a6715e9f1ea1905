// Package source loads the population dataset at startup.
//
// A location is either an http(s) URL, which is fetched with [Client], or a
// local path / file:// URL. The body is parsed as a wide CSV and melted into a
// [dataset.Dataset]. Loading happens once; there is no refresh or retry.
package source
