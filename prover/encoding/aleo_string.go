// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Aleo has no variable length byte type, so ASCII strings travel as fixed
// arrays of u128 words: 16 bytes per word, big endian within a word, zero
// padded on the right.

const aleoWordBytes = 16

// EncodeAleoString packs an ASCII string into u128 words.
func EncodeAleoString(s string) ([]*uint256.Int, error) {
	b := []byte(s)
	for _, c := range b {
		if c >= 0x80 {
			return nil, fmt.Errorf("%w: non ascii byte %#x in %q", ErrSerializeData, c, s)
		}
	}

	words := make([]*uint256.Int, 0, (len(b)+aleoWordBytes-1)/aleoWordBytes)
	for i := 0; i < len(b); i += aleoWordBytes {
		var word [aleoWordBytes]byte
		copy(word[:], b[i:])
		words = append(words, new(uint256.Int).SetBytes(word[:]))
	}
	return words, nil
}

// DecodeAleoString unpacks u128 words back into the original ASCII string,
// trimming the right zero padding.
func DecodeAleoString(words []*uint256.Int) string {
	b := make([]byte, 0, len(words)*aleoWordBytes)
	for _, word := range words {
		full := word.Bytes32()
		b = append(b, full[32-aleoWordBytes:]...)
	}
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// aleoWordList renders words as "<n>u128, ..." padded with zero words up to
// capacity. Errors if the string needs more words than the field allows.
func aleoWordList(s string, capacity int, field string) (string, error) {
	words, err := EncodeAleoString(s)
	if err != nil {
		return "", err
	}
	if len(words) > capacity {
		return "", fmt.Errorf("%w: %s %q needs %d u128 words, capacity is %d",
			ErrSerializeData, field, s, len(words), capacity)
	}

	parts := make([]string, capacity)
	for i := range parts {
		if i < len(words) {
			parts[i] = words[i].Dec() + "u128"
		} else {
			parts[i] = "0u128"
		}
	}
	return strings.Join(parts, ", "), nil
}
