package stop

import (
	"fmt"

	"github.com/theoremus-urban-solutions/ptstop/model"
)

// CheckInvariants walks the finished stop set once and reports any
// violation of the assembly invariants as diagnostics rather than hard
// failures, in the spirit of this codebase's network/reference
// consistency checks repurposed from cross-file ID checks to stop-assembly
// bookkeeping. It never mutates output.
func CheckInvariants(stops []*model.Stop, diag *model.Diagnostics) {
	seenStopo := make(map[int64]int64) // stopo id -> owning stop id
	// Stops of one plole share its pole and platform, so these two maps
	// record the owning plole id and flag only a second, different plole.
	seenPole := make(map[int64]int64)
	seenPlatform := make(map[int64]int64)

	for _, st := range stops {
		if st.StopoID != 0 {
			if owner, ok := seenStopo[st.StopoID]; ok {
				diag.Warn(fmt.Sprintf("stop position %d claimed by stops %d and %d", st.StopoID, owner, st.ID))
			}
			seenStopo[st.StopoID] = st.ID
		}
		if st.PoleID > 0 {
			if owner, ok := seenPole[st.PoleID]; ok && owner != st.PloleID {
				diag.Warn(fmt.Sprintf("pole %d claimed by ploles %d and %d", st.PoleID, owner, st.PloleID))
			}
			seenPole[st.PoleID] = st.PloleID
		}
		if st.PlatformID != 0 {
			if owner, ok := seenPlatform[st.PlatformID]; ok && owner != st.PloleID {
				diag.Warn(fmt.Sprintf("platform %d claimed by ploles %d and %d", st.PlatformID, owner, st.PloleID))
			}
			seenPlatform[st.PlatformID] = st.PloleID
		}
		if st.PoleID == 0 && st.PlatformID == 0 && st.StopoID == 0 {
			diag.Warn(fmt.Sprintf("stop %d has no platform, pole, or stop position", st.ID))
		}
		if st.Mods.Empty() && st.MaybeMods.Empty() {
			diag.Warn(fmt.Sprintf("stop %d has empty mods and maybe_mods", st.ID))
		}
		if st.PloleID == -1 && (st.PlatformID != 0 || st.PoleID > 0) {
			diag.Warn(fmt.Sprintf("orphan stop %d unexpectedly carries a platform/pole reference", st.ID))
		}
	}
}
