// Package fdreg tracks per-file-descriptor metadata the hook layer
// needs to decide whether a read/write/connect should go through the
// fiber-yielding do-IO path: is this fd a socket, is it already
// non-blocking, has the caller set a read/write timeout. It is grounded
// on the original's FdCtx/FdManager (fdmanager.h), replacing the
// original's fd-indexed std::vector (a known source of the library's
// fd-reuse-after-close bug, documented as fixed here) with a map keyed
// by fd, so entries are created and removed independently of fd
// numbering.
package fdreg
