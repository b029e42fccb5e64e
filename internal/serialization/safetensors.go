package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ember-ml/ember/internal/tensor"
)

const (
	metadataKey = "__metadata__"

	// paramsKeyPrefix prefixes the metadata entry holding a tensor's
	// parameter block, hex encoded.
	paramsKeyPrefix = "params."
)

// TensorHeader describes one tensor in the SafeTensors header.
type TensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// NamedTensor pairs a tensor with the name it is stored under.
type NamedTensor struct {
	Name   string
	Tensor *tensor.Tensor
}

// WriteSafeTensors writes tensors to w in SafeTensors format.
//
// Tensors are written in alphabetical order by name. metadata may be nil;
// the checksum and parameter block entries are added to it.
func WriteSafeTensors(w io.Writer, tensors []NamedTensor, metadata map[string]string) error {
	sorted := make([]NamedTensor, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	meta := make(map[string]string, len(metadata)+len(sorted)+1)
	for k, v := range metadata {
		meta[k] = v
	}

	header := make(map[string]any, len(sorted)+1)
	var data bytes.Buffer
	for i, nt := range sorted {
		if err := ValidateTensorName(nt.Name); err != nil {
			return err
		}
		if i > 0 && sorted[i-1].Name == nt.Name {
			return &ValidationError{Err: ErrInvalidTensorName, Tensor: nt.Name, Details: "duplicate name"}
		}
		dtype, err := dtypeToSafeTensors(nt.Tensor.DType)
		if err != nil {
			return fmt.Errorf("tensor %q: %w", nt.Name, err)
		}

		if err := checkBound(nt.Tensor); err != nil {
			return fmt.Errorf("tensor %q: %w", nt.Name, err)
		}

		start := int64(data.Len())
		data.Write(nt.Tensor.Data[:tensor.SizeofData(nt.Tensor)])
		header[nt.Name] = TensorHeader{
			DType:       dtype,
			Shape:       shapeToInt64(nt.Tensor.Shape),
			DataOffsets: [2]int64{start, int64(data.Len())},
		}
		if n := tensor.SizeofParams(nt.Tensor); n > 0 {
			meta[paramsKeyPrefix+nt.Name] = hex.EncodeToString(nt.Tensor.Params[:n])
		}
	}
	meta[checksumKey] = ComputeChecksum(data.Bytes())
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// File is a SafeTensors file read into memory.
type File struct {
	Tensors  map[string]TensorHeader
	Metadata map[string]string
	data     []byte
}

// ReadSafeTensors reads and validates a SafeTensors file from r.
// The checksum is verified when the file carries one.
func ReadSafeTensors(r io.Reader) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	f := &File{Tensors: make(map[string]TensorHeader, len(raw))}
	metas := make([]tensorMeta, 0, len(raw))
	var dataSize int64
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &f.Metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}
		var h TensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, fmt.Errorf("failed to parse tensor %q: %w", name, err)
		}
		f.Tensors[name] = h
		metas = append(metas, tensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
		dataSize = max(dataSize, h.DataOffsets[1])
	}

	if err := validateTensorOffsets(metas, dataSize); err != nil {
		return nil, err
	}
	if dataSize > MaxDataSize {
		return nil, &ValidationError{
			Err:     ErrOutOfBounds,
			Details: fmt.Sprintf("data section of %d bytes exceeds %d", dataSize, MaxDataSize),
		}
	}

	// Grows with the bytes actually read, not with the header's claim.
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, dataSize)
	if err != nil {
		return nil, &ValidationError{
			Err:     ErrOutOfBounds,
			Details: fmt.Sprintf("read %d of %d data bytes: %v", n, dataSize, err),
		}
	}
	f.data = buf.Bytes()

	if sum, ok := f.Metadata[checksumKey]; ok {
		if err := ValidateChecksum(f.data, sum); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Names returns the stored tensor names in alphabetical order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Tensors))
	for name := range f.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load copies the tensor stored under name into dst. dst must be bound and
// have the stored data type and shape.
func (f *File) Load(name string, dst *tensor.Tensor) error {
	h, ok := f.Tensors[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingTensor, name)
	}

	dtype, err := dtypeToSafeTensors(dst.DType)
	if err != nil {
		return fmt.Errorf("tensor %q: %w", name, err)
	}
	if h.DType != dtype {
		return fmt.Errorf("%w: %q stored as %s, destination is %s", ErrTensorMismatch, name, h.DType, dtype)
	}
	if !shapeEqual(h.Shape, dst.Shape) {
		return fmt.Errorf("%w: %q stored with shape %v, destination is %s", ErrTensorMismatch, name, h.Shape, dst.Shape)
	}

	if err := checkBound(dst); err != nil {
		return fmt.Errorf("tensor %q: %w", name, err)
	}

	src := f.data[h.DataOffsets[0]:h.DataOffsets[1]]
	if len(src) != tensor.SizeofData(dst) {
		return fmt.Errorf("%w: %q holds %d bytes, destination needs %d", ErrTensorMismatch, name, len(src), tensor.SizeofData(dst))
	}
	copy(dst.Data, src)

	if n := tensor.SizeofParams(dst); n > 0 {
		params, err := hex.DecodeString(f.Metadata[paramsKeyPrefix+name])
		if err != nil || len(params) != n {
			return fmt.Errorf("%w: %q has no valid parameter block", ErrTensorMismatch, name)
		}
		copy(dst.Params, params)
	}
	return nil
}

// checkBound reports whether t has memory for its data and parameter block.
func checkBound(t *tensor.Tensor) error {
	if len(t.Data) < tensor.SizeofData(t) || len(t.Params) < tensor.SizeofParams(t) {
		return fmt.Errorf("%w: need %d data and %d parameter bytes, have %d and %d", ErrUnboundTensor,
			tensor.SizeofData(t), tensor.SizeofParams(t), len(t.Data), len(t.Params))
	}
	return nil
}

// dtypeToSafeTensors returns the SafeTensors name of a built-in data type.
func dtypeToSafeTensors(dt *tensor.DataType) (string, error) {
	switch dt {
	case tensor.F32:
		return "F32", nil
	case tensor.F64:
		return "F64", nil
	case tensor.F16:
		return "F16", nil
	case tensor.Q7:
		return "I8", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, dt)
	}
}

func shapeToInt64(s *tensor.Shape) []int64 {
	out := make([]int64, s.Dim())
	for i := range out {
		out[i] = int64(s.At(i))
	}
	return out
}

func shapeEqual(stored []int64, s *tensor.Shape) bool {
	if len(stored) != s.Dim() {
		return false
	}
	for i, d := range stored {
		if d != int64(s.At(i)) {
			return false
		}
	}
	return true
}
