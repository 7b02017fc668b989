package drawer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveVertical(t *testing.T) {
	tun := DefaultTuning()
	g := ComputeGeometry(1000, SizeM, tun) // header 80, dock 650, full 968

	cases := []struct {
		name     string
		mode     Mode
		expand   bool
		minimize bool
		delta    float64
		velocity float64
		want     Transition
	}{
		{"normal below close threshold", ModeNormal, false, false, 259, 0.1,
			Transition{ModeNormal, ModeNormal, NoticeNone}},
		{"normal at close threshold", ModeNormal, false, false, g.Dock * 0.4, 0.1,
			Transition{ModeNormal, ModeNormal, NoticeClose}},
		{"normal short swipe stays", ModeNormal, false, false, 200, 1,
			Transition{ModeNormal, ModeNormal, NoticeNone}},
		{"normal long swipe closes", ModeNormal, false, false, 400, 1,
			Transition{ModeNormal, ModeNormal, NoticeClose}},
		{"normal drag open expands", ModeNormal, true, false, -200, 0,
			Transition{ModeNormal, ModeExpanded, NoticeNone}},
		{"normal swipe open expands", ModeNormal, true, true, -40, -1,
			Transition{ModeNormal, ModeExpanded, NoticeNone}},
		{"normal swipe open without expand", ModeNormal, false, false, -40, -1,
			Transition{ModeNormal, ModeNormal, NoticeNone}},
		{"normal minimizes", ModeNormal, false, true, 100, 0.1,
			Transition{ModeNormal, ModeMinimized, NoticeMinimize}},
		{"normal minimize never closes slowly", ModeNormal, false, true, 900, 0.1,
			Transition{ModeNormal, ModeMinimized, NoticeMinimize}},
		{"normal tiny drag with minimize", ModeNormal, false, true, 50, 2,
			Transition{ModeNormal, ModeNormal, NoticeNone}},
		{"minimized restores by distance", ModeMinimized, false, true, -41, 0,
			Transition{ModeMinimized, ModeNormal, NoticeRestore}},
		{"minimized restores by swipe", ModeMinimized, false, true, -31, -0.6,
			Transition{ModeMinimized, ModeNormal, NoticeRestore}},
		{"minimized closes", ModeMinimized, false, true, 41, 0,
			Transition{ModeMinimized, ModeMinimized, NoticeClose}},
		{"minimized stays", ModeMinimized, false, true, 20, 0,
			Transition{ModeMinimized, ModeMinimized, NoticeNone}},
		{"expanded swipe closes", ModeExpanded, true, false, 40, 1,
			Transition{ModeExpanded, ModeExpanded, NoticeClose}},
		{"expanded far drag closes", ModeExpanded, true, false, 400, 0,
			Transition{ModeExpanded, ModeExpanded, NoticeClose}},
		{"expanded returns to normal", ModeExpanded, true, false, 200, 0,
			Transition{ModeExpanded, ModeNormal, NoticeNone}},
		{"expanded snaps back", ModeExpanded, true, false, 100, 0,
			Transition{ModeExpanded, ModeExpanded, NoticeNone}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(Release{
				Side:         SideBottom,
				Mode:         tc.mode,
				Geometry:     g,
				Delta:        tc.delta,
				AvgVelocity:  tc.velocity,
				ExpandMode:   tc.expand,
				MinimizeMode: tc.minimize,
			}, tun)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestResolveSkipMinimize(t *testing.T) {
	tun := DefaultTuning()
	g := ComputeGeometry(1000, SizeM, tun)
	r := Release{
		Side:         SideBottom,
		Mode:         ModeNormal,
		Geometry:     g,
		MinimizeMode: true,
		Delta:        g.Dock*1.2 + 1,
		AvgVelocity:  1.6,
	}
	// Minimize is checked first and wins on distance alone.
	require.Equal(t, NoticeMinimize, Resolve(r, tun).Notice)

	tun.MinimizeThreshold = 2
	require.Equal(t, NoticeClose, Resolve(r, tun).Notice)
	r.AvgVelocity = 1.4
	require.Equal(t, NoticeNone, Resolve(r, tun).Notice)
}

func TestResolveSwipeCloseNeedsDistance(t *testing.T) {
	tun := DefaultTuning()
	g := ComputeGeometry(1000, SizeM, tun)
	r := Release{Side: SideTop, Mode: ModeNormal, Geometry: g, Delta: -250, AvgVelocity: -1}
	require.Equal(t, NoticeNone, Resolve(r, tun).Notice)
	r.Delta = -400
	require.Equal(t, NoticeClose, Resolve(r, tun).Notice)
}

func TestResolveHorizontal(t *testing.T) {
	tun := DefaultTuning()
	cases := []struct {
		name     string
		side     Side
		delta    float64
		velocity float64
		closes   bool
	}{
		{"left past threshold", SideLeft, -200, -0.1, true},
		{"left short", SideLeft, -100, -0.1, false},
		{"left swipe", SideLeft, -40, -0.8, true},
		{"left wrong direction swipe", SideLeft, 40, 0.8, false},
		{"right past threshold", SideRight, 128, 0, true},
		{"right wrong direction", SideRight, -300, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(Release{Side: tc.side, PanelWidth: 320, Delta: tc.delta, AvgVelocity: tc.velocity}, tun)
			require.Equal(t, tc.closes, got.Closed())
			require.Equal(t, ModeNormal, got.To)
		})
	}
}
