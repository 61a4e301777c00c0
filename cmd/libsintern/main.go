//go:build cgo

// Command libsintern builds the interner as a C shared or archive library:
//
//	go build -buildmode=c-shared -o libsintern.so ./cmd/libsintern
//
// Interners are passed to the host as opaque 32-bit handles. Addresses
// returned by sintern_get_address stay valid until the interner is deleted.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/robinvdvleuten/sintern/capi"
	"github.com/robinvdvleuten/sintern/intern"
)

var registry = capi.NewRegistry()

func handle(inst C.uint32_t) capi.Handle { return capi.Handle(inst) }

//export sintern_new_interner
func sintern_new_interner(capacity C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.New(uint32(capacity)))
}

//export sintern_delete_interner
func sintern_delete_interner(inst C.uint32_t) {
	registry.Delete(handle(inst))
}

//export sintern_get_identifier_with_len
func sintern_get_identifier_with_len(inst C.uint32_t, s *C.char, n C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetIdentifier(handle(inst), (*byte)(unsafe.Pointer(s)), uint32(n)))
}

//export sintern_get_identifier_no_create_with_len
func sintern_get_identifier_no_create_with_len(inst C.uint32_t, s *C.char, n C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetIdentifierNoCreate(handle(inst), (*byte)(unsafe.Pointer(s)), uint32(n)))
}

//export sintern_get_identifier_static_with_len
func sintern_get_identifier_static_with_len(inst C.uint32_t, s *C.char, n C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetIdentifierStatic(handle(inst), (*byte)(unsafe.Pointer(s)), uint32(n)))
}

//export sintern_get_identifier_extra_with_len
func sintern_get_identifier_extra_with_len(inst C.uint32_t, s *C.char, n C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetIdentifierExtra(handle(inst), (*byte)(unsafe.Pointer(s)), uint32(n)))
}

//export sintern_get_address
func sintern_get_address(inst C.uint32_t, id C.uint32_t) *C.char {
	return (*C.char)(unsafe.Pointer(registry.GetAddress(handle(inst), intern.ID(id))))
}

//export sintern_get_length
func sintern_get_length(inst C.uint32_t, id C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetLength(handle(inst), intern.ID(id)))
}

//export sintern_get_last
func sintern_get_last(inst C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetLast(handle(inst)))
}

//export sintern_get_info
func sintern_get_info(inst C.uint32_t, id C.uint32_t) C.uint32_t {
	return C.uint32_t(registry.GetTag(handle(inst), intern.ID(id)))
}

//export sintern_set_info
func sintern_set_info(inst C.uint32_t, id C.uint32_t, info C.uint32_t) {
	registry.SetTag(handle(inst), intern.ID(id), uint32(info))
}

func main() {}
