// Package files locates candidate price files on disk. Discovery is the
// only place that touches the configured input directory; everything
// downstream works on explicit paths.
package files
