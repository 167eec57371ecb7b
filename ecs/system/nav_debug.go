package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/soras/bossrun/common"
	"github.com/soras/bossrun/ecs"
	"github.com/soras/bossrun/ecs/component"
	"github.com/soras/bossrun/nav"
)

// DrawNavDebug overlays the waypoint graph: edges as faint lines, nodes as
// squares tinted by their weight from the most recent Dijkstra run (green
// near the source shading to red far from it), and each agent's current
// look-ahead waypoint as a bright marker.
func DrawNavDebug(w *ecs.World, graph *nav.Graph, planner *nav.Planner, nodeSize float64, screen *ebiten.Image) {
	if graph == nil || screen == nil {
		return
	}
	if nodeSize <= 0 {
		nodeSize = 6
	}

	edgeColor := color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0x60}
	graph.EachNode(func(id nav.NodeID, n nav.Node) {
		for _, e := range n.Edges {
			// draw each undirected edge once
			if e.To < id {
				continue
			}
			to, ok := graph.Node(e.To)
			if !ok {
				continue
			}
			vector.StrokeLine(screen,
				toScreenX(n.Pos.X), toScreenY(n.Pos.Y),
				toScreenX(to.Pos.X), toScreenY(to.Pos.Y),
				1, edgeColor, false)
		}
	})

	var weights map[nav.NodeID]float64
	maxWeight := 0.0
	if planner != nil {
		weights = planner.WeightSnapshot()
		for _, wgt := range weights {
			if !math.IsInf(wgt, 1) && wgt > maxWeight {
				maxWeight = wgt
			}
		}
	}

	graph.EachNode(func(id nav.NodeID, n nav.Node) {
		tint := color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xc0}
		if wgt, ok := weights[id]; ok && maxWeight > 0 {
			t := wgt / maxWeight
			tint = color.NRGBA{R: uint8(255 * t), G: uint8(255 * (1 - t)), B: 0x20, A: 0xc0}
		}
		vector.DrawFilledRect(screen,
			toScreenX(n.Pos.X)-float32(nodeSize/2), toScreenY(n.Pos.Y)-float32(nodeSize/2),
			float32(nodeSize), float32(nodeSize), tint, false)
	})

	if w != nil {
		marker := color.NRGBA{R: 0x00, G: 0xcc, B: 0xff, A: 0xff}
		ecs.ForEach(w, component.PathFollowComponent.Kind(), func(_ ecs.Entity, pf *component.PathFollow) {
			if !pf.HasNext {
				return
			}
			vector.DrawFilledRect(screen,
				toScreenX(pf.Next.Pos.X)-float32(nodeSize/2)-1, toScreenY(pf.Next.Pos.Y)-float32(nodeSize/2)-1,
				float32(nodeSize)+2, float32(nodeSize)+2, marker, false)
		})
	}
}

func toScreenX(x float64) float32 {
	return float32(x + common.BaseWidth/2)
}

func toScreenY(y float64) float32 {
	return float32(y + common.BaseHeight/2)
}
