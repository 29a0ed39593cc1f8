// Package mmap provides read-only memory-mapped access to local input files.
//
// Haplotype inputs can be large; mapping them lets the parser stream over
// the file without copying it through a read buffer first.
//
//	m, err := mmap.Open("chr2.ms")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	r := io.NewSectionReader(m, 0, int64(m.Size()))
//
// On Unix the file is mapped with mmap(2) and access hints go to madvise(2).
// Other platforms read the file into memory and ignore hints.
package mmap
