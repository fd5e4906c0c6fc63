// Package core holds the drawing primitives shared by the views and the
// terminal backend: colours, styles, screen cells and rectangles.
package core
