package seqmin_test

import (
	"context"
	"fmt"
	"strings"

	seqmin "github.com/hupe1980/seqmin"
	"github.com/hupe1980/seqmin/alphabet"
	"github.com/hupe1980/seqmin/blobstore"
	"github.com/hupe1980/seqmin/fasta"
	"github.com/hupe1980/seqmin/partition"
)

func Example() {
	engine, err := seqmin.DNA().K(4).L(2).Build()
	if err != nil {
		panic(err)
	}

	for hit, err := range engine.ScanBytes([]byte("ACGTAC")) {
		if err != nil {
			panic(err)
		}
		fmt.Println(hit.WindowOffset, hit.MinimizerOffset, hit.Key)
	}
	// Output:
	// 0 0 1
	// 1 1 6
	// 2 4 1
}

func ExampleEngine_Bin() {
	engine, err := seqmin.DNA().K(4).L(2).Build()
	if err != nil {
		panic(err)
	}

	idx, err := engine.BinBytes(context.Background(), []byte("ACGTAC"))
	if err != nil {
		panic(err)
	}

	fmt.Println("partitions:", idx.Len())
	fmt.Println("windows:", idx.TotalWindows())

	mer, _ := engine.DecodeKey(idx.Keys()[0])
	fmt.Printf("smallest key decodes to %q\n", mer)
	// Output:
	// partitions: 2
	// windows: 3
	// smallest key decodes to "AC"
}

func ExampleEngine_SaveIndex() {
	ctx := context.Background()
	engine, err := seqmin.DNA().K(4).L(2).Build()
	if err != nil {
		panic(err)
	}

	idx, err := engine.BinBytes(ctx, []byte("ACGTACGTACGT"))
	if err != nil {
		panic(err)
	}

	store := blobstore.NewMemoryStore()
	if err := engine.SaveIndex(ctx, store, "snapshots/demo", idx, partition.CodecZstd); err != nil {
		panic(err)
	}

	loaded, err := engine.LoadIndex(ctx, store, "snapshots/demo")
	if err != nil {
		panic(err)
	}
	fmt.Println(loaded.TotalWindows())
	// Output:
	// 9
}

func Example_fasta() {
	ctx := context.Background()
	engine, err := seqmin.DNA().K(5).L(2).Build()
	if err != nil {
		panic(err)
	}

	in := strings.NewReader(">chr1\nACGTACGT\n>chr2\nTTTTTTT\n")
	for rec, err := range fasta.Records(in) {
		if err != nil {
			panic(err)
		}
		idx, err := engine.BinBytes(ctx, rec.Seq)
		if err != nil {
			panic(err)
		}
		fmt.Println(rec.ID, idx.TotalWindows())
	}
	// Output:
	// chr1 4
	// chr2 3
}

func ExampleCustom() {
	alpha, err := alphabet.New([]byte("xyz"))
	if err != nil {
		panic(err)
	}

	engine, err := seqmin.Custom(alpha).K(3).L(1).Build()
	if err != nil {
		panic(err)
	}

	off, mer, err := engine.MinimizerOf([]byte("zyx"))
	if err != nil {
		panic(err)
	}
	fmt.Println(off, string(mer))
	// Output:
	// 2 x
}
