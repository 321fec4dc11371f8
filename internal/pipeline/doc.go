// Package pipeline extracts geotags from every candidate image under a scan
// root.
//
// Each file goes through a fixed sequence of steps: open, verify the image
// header, read the EXIF block, decode the GPS sub-block and convert the
// coordinates. Each stage is implemented as a Step that receives the
// per-file state and can fill it in. The first failing step ends the file,
// and its error is classified into a model.SkipReason.
//
// The Extractor drives the walker and runs the pipeline once per file.
// Files are processed sequentially by default; with more than one worker
// they are fanned out over an errgroup while outcomes stay in discovery
// order, so the exported rows do not depend on the worker count.
package pipeline
