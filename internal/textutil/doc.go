// Package textutil sanitizes titles and labels for use as path segments.
package textutil
