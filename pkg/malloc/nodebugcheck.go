//go:build !debug

package malloc

func debugCheckDoubleFree(base uintptr) {}
func debugClearFreed(base uintptr)      {}
