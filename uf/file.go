package uf

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FileReader discovers a UF file's record padding flavor and iterates
// records to end-of-input, assembling the decoded ray list and sweep
// index arrays. It requires only forward reads; it never seeks.
type FileReader struct {
	Rays    []*Ray
	Padding int

	sweepNumbers    []int16
	firstRayInSweep []int
	lastRayInSweep  []int
}

// NewFileReader decodes every record from r until end of input.
func NewFileReader(r io.Reader) (*FileReader, error) {
	sessionID := uuid.NewString()
	log := logrus.WithField("session", sessionID)

	br := bufio.NewReader(r)

	lookahead := make([]byte, 8)
	n, err := io.ReadFull(br, lookahead)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return nil, newFormatError("empty input")
		}
		return nil, newIoError("reading initial bytes", err)
	}
	lookahead = lookahead[:n]

	padding, err := detectPadding(lookahead)
	if err != nil {
		return nil, err
	}
	log.Debugf("detected %d bytes of record padding", padding)

	fr := &FileReader{Padding: padding}

	for {
		if len(lookahead) < padding+4 {
			return nil, newFormatError("truncated record header")
		}
		recordWords := int16(binary.BigEndian.Uint16(lookahead[padding+2 : padding+4]))
		if recordWords <= 0 {
			return nil, newFormatError("invalid record_length %d", recordWords)
		}
		recordSize := int(recordWords) * 2

		held := lookahead[padding:]
		need := recordSize - len(held)
		if need < 0 {
			return nil, newFormatError("record_length %d (%d bytes) shorter than buffered header", recordWords, recordSize)
		}
		record := make([]byte, 0, recordSize)
		record = append(record, held...)
		if need > 0 {
			rest := make([]byte, need)
			if _, err := io.ReadFull(br, rest); err != nil {
				return nil, newIoError("reading record payload", err)
			}
			record = append(record, rest...)
		}

		ray, err := decodeRay(record)
		if err != nil {
			return nil, err
		}
		fr.Rays = append(fr.Rays, ray)
		log.Tracef("ray %d sweep=%d az=%.2f el=%.2f fields=%d",
			len(fr.Rays)-1, ray.Mandatory.SweepNumber, ray.Azimuth(), ray.Elevation(), len(ray.Fields))

		if padding > 0 {
			pad := make([]byte, padding)
			if _, err := io.ReadFull(br, pad); err != nil {
				if err == io.EOF || err == io.ErrUnexpectedEOF {
					break
				}
				return nil, newIoError("reading post-record padding", err)
			}
		}

		next := make([]byte, 8)
		n, err := io.ReadFull(br, next)
		if err != nil && err != io.ErrUnexpectedEOF {
			if err == io.EOF {
				break
			}
			return nil, newIoError("reading next record header", err)
		}
		if n < 8 {
			break
		}
		lookahead = next
	}

	fr.buildSweepIndex()
	return fr, nil
}

// detectPadding peeks the first 8 bytes and locates the literal ASCII
// "UF" at offset 0, 2, or 4. If "UF" is not found within the first 6
// bytes, the input is not a valid UF stream.
func detectPadding(lookahead []byte) (int, error) {
	for _, p := range []int{0, 2, 4} {
		if len(lookahead) >= p+2 && string(lookahead[p:p+2]) == ufMagic {
			return p, nil
		}
	}
	return 0, newFormatError("UF magic not found in first 6 bytes")
}

// buildSweepIndex computes ray_sweep_numbers / first_ray_in_sweep /
// last_ray_in_sweep from the decoded rays' sweep_number fields, in
// order of first occurrence.
func (fr *FileReader) buildSweepIndex() {
	fr.sweepNumbers = make([]int16, len(fr.Rays))
	var order []int16
	first := map[int16]int{}
	last := map[int16]int{}
	for i, ray := range fr.Rays {
		sn := ray.Mandatory.SweepNumber
		fr.sweepNumbers[i] = sn
		if _, ok := first[sn]; !ok {
			order = append(order, sn)
			first[sn] = i
		}
		last[sn] = i
	}
	fr.firstRayInSweep = make([]int, len(order))
	fr.lastRayInSweep = make([]int, len(order))
	for i, sn := range order {
		fr.firstRayInSweep[i] = first[sn]
		fr.lastRayInSweep[i] = last[sn]
	}
}

// NSweeps returns the number of distinct sweeps found.
func (fr *FileReader) NSweeps() int { return len(fr.firstRayInSweep) }

// FirstRayInSweep returns the ray index array, one entry per sweep.
func (fr *FileReader) FirstRayInSweep() []int { return fr.firstRayInSweep }

// LastRayInSweep returns the ray index array, one entry per sweep.
func (fr *FileReader) LastRayInSweep() []int { return fr.lastRayInSweep }

// RaySweepNumbers returns the sweep_number field of every ray, in
// decode order.
func (fr *FileReader) RaySweepNumbers() []int16 { return fr.sweepNumbers }

// ReadUF decodes a UF stream into a Volume. source may be a
// filesystem path (string) or an io.Reader; any other type is a
// programmer error.
//
// When source is a path, this function owns the resulting file handle
// for the duration of decoding and closes it before returning; when
// source is an io.Reader, it is never closed.
func ReadUF(source any, opts ReadOptions) (*Volume, error) {
	switch s := source.(type) {
	case string:
		return ReadUFFile(s, opts)
	case io.Reader:
		fr, err := NewFileReader(s)
		if err != nil {
			return nil, err
		}
		return assembleVolume(fr, opts)
	default:
		return nil, newOptionError("source must be a path string or io.Reader")
	}
}

// ReadUFFile opens path, decodes it as a UF file, and closes it before
// returning.
func ReadUFFile(path string, opts ReadOptions) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIoError("opening "+path, err)
	}
	defer f.Close()

	fr, err := NewFileReader(f)
	if err != nil {
		return nil, err
	}
	return assembleVolume(fr, opts)
}
