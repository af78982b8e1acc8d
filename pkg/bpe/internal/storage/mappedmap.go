package storage

import "encoding/binary"

const noOffset = 0xFFFFFFFF

// KeyValueSerializer describes how to write, read, and skip one field
// (key or value) of a mapped-map entry. Write returns an error for input
// that cannot be represented in the on-disk layout (e.g. a key longer than
// the short-string limit); callers must not assume bytes were written on
// error.
type KeyValueSerializer[T any] interface {
	Size(v T) int
	Write(w *Writer, v T) error
	Read(r *Reader) T
	Skip(r *Reader)
}

// Entry is one key/value pair to be laid out in a MappedMap.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// MappedMap is a hash-indexed key/value store over an attached buffer, with
// bucket-local linear probing for collisions:
//
//	buffer_size         u32
//	number_of_elements  u32
//	hash_table_size     u32
//	end_pos             u32
//	index               (begin u32, end u32) x hash_table_size
//	storage             concatenated (key, value) records in bucket order
//
// Lookups hash the key, mod hash_table_size, and linearly scan the bucket's
// storage region comparing keys. All accessors return borrowed data; a
// MappedMap never copies the attached buffer.
type MappedMap[K any, V any] struct {
	hash   func(K) uint64
	eq     func(a, b K) bool
	keySer KeyValueSerializer[K]
	valSer KeyValueSerializer[V]

	numElements   uint32
	hashTableSize uint32
	endPos        uint32
	index         []byte
	storage       []byte
}

const mappedMapHeaderSize = 16

// NewMappedMap constructs an unattached MappedMap configured with the
// given key hash/equality and key/value serializers.
func NewMappedMap[K any, V any](
	hash func(K) uint64,
	eq func(a, b K) bool,
	keySer KeyValueSerializer[K],
	valSer KeyValueSerializer[V],
) *MappedMap[K, V] {
	return &MappedMap[K, V]{hash: hash, eq: eq, keySer: keySer, valSer: valSer}
}

// Attach reads the header from data and records borrowed views over the
// index and storage regions. Returns the number of bytes this map occupies
// in data.
func (m *MappedMap[K, V]) Attach(data []byte) (int, error) {
	if len(data) < mappedMapHeaderSize {
		return 0, ErrCorrupt
	}
	r := NewReader(data)
	bufferSize := r.ReadU32()
	numElements := r.ReadU32()
	hashTableSize := r.ReadU32()
	endPos := r.ReadU32()

	if bufferSize < mappedMapHeaderSize || int(bufferSize) > len(data) {
		return 0, ErrCorrupt
	}

	indexStart := mappedMapHeaderSize
	indexLen := int(hashTableSize) * 8
	storageStart := indexStart + indexLen
	if storageStart > int(bufferSize) {
		return 0, ErrCorrupt
	}
	storageEnd := storageStart + int(endPos)
	if storageEnd > int(bufferSize) {
		return 0, ErrCorrupt
	}

	m.numElements = numElements
	m.hashTableSize = hashTableSize
	m.endPos = endPos
	m.index = data[indexStart:storageStart]
	m.storage = data[storageStart:bufferSize]
	return int(bufferSize), nil
}

// Len returns the number of key/value pairs in the map.
func (m *MappedMap[K, V]) Len() int { return int(m.numElements) }

func (m *MappedMap[K, V]) bucket(key K) (begin, end uint32, ok bool) {
	if m.hashTableSize == 0 {
		return 0, 0, false
	}
	idx := m.hash(key) % uint64(m.hashTableSize)
	off := idx * 8
	begin = binary.LittleEndian.Uint32(m.index[off:])
	end = binary.LittleEndian.Uint32(m.index[off+4:])
	if begin == noOffset || end == noOffset {
		return 0, 0, false
	}
	if begin > end || int(end) > len(m.storage) {
		return 0, 0, false
	}
	return begin, end, true
}

// Contains reports whether key is present in the map.
func (m *MappedMap[K, V]) Contains(key K) bool {
	begin, end, ok := m.bucket(key)
	if !ok {
		return false
	}
	r := NewReader(m.storage[begin:end])
	for r.Remaining() > 0 {
		k := m.keySer.Read(r)
		if m.eq(key, k) {
			return true
		}
		m.valSer.Skip(r)
	}
	return false
}

// Get returns the value for key and whether it was found.
func (m *MappedMap[K, V]) Get(key K) (V, bool) {
	var zero V
	begin, end, ok := m.bucket(key)
	if !ok {
		return zero, false
	}
	r := NewReader(m.storage[begin:end])
	for r.Remaining() > 0 {
		k := m.keySer.Read(r)
		if m.eq(key, k) {
			return m.valSer.Read(r), true
		}
		m.valSer.Skip(r)
	}
	return zero, false
}

// WriteMappedMap serializes entries into the MappedMap on-disk layout,
// choosing a bucket count that minimizes collisions per chooseHashTableSize.
// Returns an error, with no partial buffer, if any key or value cannot be
// serialized (e.g. BytesKeySerializer given a key over the short-string
// limit) rather than producing a buffer whose bucket offsets no longer
// match what was written.
func WriteMappedMap[K any, V any](
	entries []Entry[K, V],
	hash func(K) uint64,
	keySer KeyValueSerializer[K],
	valSer KeyValueSerializer[V],
) ([]byte, error) {
	hashes := make([]uint64, len(entries))
	for i, e := range entries {
		hashes[i] = hash(e.Key)
	}
	hashTableSize := chooseHashTableSize(len(entries), hashes)

	buckets := make([][]int, hashTableSize)
	for i, h := range hashes {
		b := int(h % uint64(hashTableSize))
		buckets[b] = append(buckets[b], i)
	}

	storageSize := 0
	for _, e := range entries {
		storageSize += keySer.Size(e.Key) + valSer.Size(e.Value)
	}

	indexSize := hashTableSize * 8
	bufferSize := mappedMapHeaderSize + indexSize + storageSize

	w := NewWriter()
	w.WriteU32(uint32(bufferSize))
	w.WriteU32(uint32(len(entries)))
	w.WriteU32(uint32(hashTableSize))
	w.WriteU32(0) // patched below

	indexOffset := w.Len()
	for range buckets {
		w.WriteU32(noOffset)
		w.WriteU32(noOffset)
	}

	storageBase := w.Len()
	for b, members := range buckets {
		if len(members) == 0 {
			continue
		}
		begin := uint32(w.Len() - storageBase)
		for _, i := range members {
			if err := keySer.Write(w, entries[i].Key); err != nil {
				return nil, err
			}
			if err := valSer.Write(w, entries[i].Value); err != nil {
				return nil, err
			}
		}
		end := uint32(w.Len() - storageBase)
		w.PutU32(indexOffset+b*8, begin)
		w.PutU32(indexOffset+b*8+4, end)
	}

	w.PutU32(12, uint32(w.Len()-storageBase))
	return w.Bytes(), nil
}

// chooseHashTableSize picks the prime bucket count in [0.5n, 1.2n] that
// minimizes total collisions, using a sieve of primes up to the upper
// bound. Falls back to 1 bucket for the degenerate empty-map case.
func chooseHashTableSize(n int, hashes []uint64) int {
	if n == 0 {
		return 1
	}

	maxSize := int(float64(n) * 1.2)
	minSize := int(float64(n) * 0.5)
	if maxSize < 1 {
		maxSize = 1
	}

	primes := sievePrimes(maxSize + 1)

	lowest := 0
	for lowest < len(primes) && primes[lowest] < minSize {
		lowest++
	}

	best := 0
	bestCollisions := -1
	for i := lowest; i < len(primes); i++ {
		size := primes[i]
		counts := make([]int, size)
		for _, h := range hashes {
			counts[h%uint64(size)]++
		}
		collisions := 0
		for _, c := range counts {
			if c >= 2 {
				collisions += c - 1
			}
		}
		if bestCollisions == -1 || collisions < bestCollisions {
			bestCollisions = collisions
			best = size
		}
	}

	if best == 0 {
		// No candidate prime fell in range (small n): fall back to the
		// largest prime below the range, or 1 if none exists.
		if len(primes) > 0 {
			return primes[len(primes)-1]
		}
		return 1
	}
	return best
}

// sievePrimes returns all primes strictly less than n using a Sieve of
// Eratosthenes.
func sievePrimes(n int) []int {
	if n < 3 {
		return nil
	}
	isComposite := make([]bool, n)
	var primes []int
	for i := 2; i < n; i++ {
		if isComposite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * 2; j < n; j += i {
			isComposite[j] = true
		}
	}
	return primes
}
