package placement

// FloorY converts a top-down Y (shelf top to item top) into the item's bottom
// height above the bin floor.
func FloorY(binHeight, topDownY, itemHeight float64) float64 {
	return binHeight - topDownY - itemHeight
}

// TopDownY converts a bottom height above the bin floor back into the
// top-down Y of the item's top edge. It is the inverse of FloorY.
func TopDownY(binHeight, bottom, itemHeight float64) float64 {
	return binHeight - bottom - itemHeight
}
