// Package language maps subtitle language tags to container metadata.
//
// Episode bundles name their subtitle directories with BCP-47 style tags
// (en, zh-Hans, pt-BR). Matroska wants an ISO 639-2 code and a readable
// track title, so this package resolves both: a small table covers common
// languages and golang.org/x/text handles the rest.
package language
