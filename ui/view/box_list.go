package view

import (
	"github.com/soocke/bbox-annotator-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// BoxList is the listbox of boxes on the current image with its edit buttons.
type BoxList interface {
	SetRows(rows []string)
	Selection() []int
}

type boxList struct {
	list *ListboxWidget
}

// NewBoxList builds the listbox and the Delete/Clear buttons starting at row
// in column col. It returns the view and the next free row.
func NewBoxList(row, col int, boxColor string, onDelete, onClear func()) (BoxList, int) {
	header := Label(Txt("Bounding boxes:"), Anchor("w"))
	Grid(header, Row(row), Column(col), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++
	lb := Listbox(Width(26), Height(12), Selectmode("browse"), Exportselection(false), Foreground(boxColor))
	Grid(lb, Row(row), Column(col), Columnspan(2), Sticky("nsew"), Padx("0.4m"), Pady("0.2m"))
	row++
	del := TButton(Txt("Delete"), Style(theme.StyleDangerButton), Command(onDelete))
	Grid(del, Row(row), Column(col), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	clr := TButton(Txt("Clear All"), Style(theme.StyleDangerButton), Command(onClear))
	Grid(clr, Row(row), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	return &boxList{list: lb}, row
}

func (v *boxList) SetRows(rows []string) {
	if v == nil || v.list == nil {
		return
	}
	v.list.Delete(0, END)
	for _, r := range rows {
		v.list.Insert(END, r)
	}
}

func (v *boxList) Selection() []int {
	if v == nil || v.list == nil {
		return nil
	}
	return v.list.Curselection()
}
