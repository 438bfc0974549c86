// Package domain contains the core entities of the SafeSurf client: the signals
// an analysis report is built from, the verdict derived from them and the
// closed set of outcomes an analysis pass can end in. The types are free of
// transport and presentation concerns so every component can share them.
package domain
