package mesh

// Package mesh loads STL (binary and ASCII) and 3MF model files and renders
// them into theme-tinted raster previews for the gallery, without requiring
// an OpenGL context.
