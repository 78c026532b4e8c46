package flatfs

// validateName checks a filename against the constraints shared by Create,
// Delete, Write, and Read: non-empty (Create only -- see callers) and no
// longer than MaxFilename bytes. The original C implementation's
// validate_string_manual additionally demanded a NUL byte within the name
// buffer's first MaxFilename+1 positions; that's a C buffer-safety check
// with no Go equivalent since a string here carries its own length, so
// len(name) <= MaxFilename is the whole of it.
func validateName(name string) bool {
	return len(name) <= MaxFilename
}
