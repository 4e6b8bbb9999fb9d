// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package imagetype

import (
	"io"
	"os"
)

// SignatureSize is the maximum size of the signature window,
// the leading bytes of a file used to classify it.
const SignatureSize = 8192

// Signature returns the signature window of b: b itself if it is short
// enough, else its first SignatureSize bytes. The bytes are not copied.
func Signature(b []byte) []byte {
	if len(b) > SignatureSize {
		return b[:SignatureSize]
	}
	return b
}

// ReadSignature reads the signature window from r.
// If r is an io.Seeker, the window is read from the start of the stream
// and the current position of r is restored before returning.
// A stream shorter than SignatureSize is not an error.
func ReadSignature(r io.Reader) ([]byte, error) {
	return readSignature(r, SignatureSize)
}

// ReadSignatureFile reads the signature window of the named file.
func ReadSignatureFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSignature(f, SignatureSize)
}

func readSignature(r io.Reader, size int) (b []byte, err error) {
	if s, ok := r.(io.Seeker); ok {
		var pos int64
		if pos, err = s.Seek(0, io.SeekCurrent); err != nil {
			return nil, err
		}
		if _, err = s.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		defer func() {
			if _, err2 := s.Seek(pos, io.SeekStart); err == nil {
				err = err2
			}
		}()
	}

	b = make([]byte, size)
	n, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return b[:n], err
}
