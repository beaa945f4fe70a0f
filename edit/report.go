package edit

import (
	"fmt"

	"github.com/gosimple/slug"

	"cssedit/config"
	"cssedit/plan"
)

// storeResult saves segment tree and per block snapshots to debug report.
func storeResult(rpt *config.Report, res *plan.Result, text string) {
	if rpt == nil {
		return
	}
	rpt.StoreData("segments.txt", []byte(res.Source.Dump()))
	for i, e := range res.Edits {
		name := snapshotName(i, e.Edit)
		rpt.StoreData(name+"-before.css", []byte(e.Before))
		if e.Kind != plan.EditKindRemove {
			rpt.StoreData(name+"-after.css", []byte(e.After))
		}
	}
	rpt.StoreData("edited.css", []byte(text))
}

func snapshotName(i int, e plan.Edit) string {
	name := slug.Make(e.Selector)
	if len(name) == 0 {
		name = "block"
	}
	return fmt.Sprintf("edits/%02d-%s-%s", i+1, e.Kind, name)
}
