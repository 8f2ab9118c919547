package main

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/rhettc/idascripts/pkg/addrdb"
	"github.com/rhettc/idascripts/pkg/enum"
	"github.com/rhettc/idascripts/pkg/memdb"
)

func main() {
	// two tiny functions followed by an array of dwords
	db := memdb.NewFromBytes(0x401000, []byte{
		0x55, 0x48, 0x89, 0xe5, 0xc3, // push rbp; mov rbp, rsp; ret
		0x55, 0x48, 0x89, 0xe5, 0xc3,
		0x0f, 0x0b, // ud2
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00,
	})

	if _, err := db.LoadX86(0x401000); err != nil {
		panic(err)
	}
	// the loader ate the array as code, redefine it
	if err := db.Undefine(0x40100c, 12); err != nil {
		panic(err)
	}
	if err := db.MarkData(0x40100c, 12, 4); err != nil {
		panic(err)
	}
	for _, c := range [][2]uint64{{0x401000, 0x401005}, {0x401005, 0x40100a}} {
		if err := db.AddChunk(c[0], c[1], false); err != nil {
			panic(err)
		}
	}

	segs := db.Segments()
	if err := segs.Add(".text", addrdb.Range{First: 0x401000, Last: 0x40100c},
		labels.Set{"class": "CODE"}); err != nil {
		panic(err)
	}
	if err := segs.Add(".data", addrdb.Range{First: 0x40100c, Last: db.End()},
		labels.Set{"class": "DATA"}); err != nil {
		panic(err)
	}

	all := db.Bounds()

	fmt.Println("funcs:")
	for ea := range enum.Funcs(db, enum.In(all)) {
		fmt.Printf("  %#x\n", ea)
	}

	fmt.Println("heads:")
	for ea := range enum.Heads(db, enum.In(all)) {
		fmt.Printf("  %#x  %-7s %q\n", ea, db.Flags(ea), db.Text(ea))
	}

	fmt.Println("undefs:")
	for ea := range enum.Undefs(db, enum.In(all)) {
		fmt.Printf("  %#x\n", ea)
	}

	fmt.Println("array items at 0x40100c:")
	for ea := range enum.ArrayItems(db, enum.From(0x40100c)) {
		fmt.Printf("  %#x\n", ea)
	}

	sel, err := labels.Parse("class=CODE")
	if err != nil {
		panic(err)
	}
	for _, seg := range segs.GetByLabel(sel) {
		fmt.Printf("text matches in %s %s:\n", seg.Name, seg.Range)
		seq, err := enum.Texts(db, enum.In(seg.Range),
			enum.Match("^push"), enum.Search(addrdb.SearchRegex))
		if err != nil {
			panic(err)
		}
		for ea := range seq {
			fmt.Printf("  %#x  %s\n", ea, db.Text(ea))
		}
	}
}
