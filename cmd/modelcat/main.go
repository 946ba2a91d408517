// Package main is the entry point for modelcat, a catalog extractor
// for forecasting-model libraries: it reflects over a library's model
// descriptors, scrapes the documentation taxonomy, and emits normalized
// CSV catalogs.
package main

func main() {
	Execute()
}
