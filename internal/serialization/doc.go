// Package serialization stores named tensors in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes]
//
// Data types map to SafeTensors names: F32, F64 and F16 keep their names,
// Q7 is stored as I8. Parameter blocks (the Q7 shift and zero point) and a
// SHA-256 checksum of the data section are kept in the __metadata__ map.
//
// Reading copies tensor data into tensors whose memory was already planned,
// so a trained model can be restored into static buffers:
//
//	f, err := serialization.ReadSafeTensors(r)
//	if err != nil {
//	    return err
//	}
//	err = f.Load("layers.1.0", &dense.Weights)
package serialization
