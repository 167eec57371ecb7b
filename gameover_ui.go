package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/soras/bossrun/common"
)

// NewGameOverUI builds the end-of-run panel: outcome, score, the top runs
// once the leaderboard answers, and the restart countdown. Colored
// nine-slices and the built-in basic font keep it free of asset loading.
func NewGameOverUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray := color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}

	titleLabel := "Game Over"
	if g.victory {
		titleLabel = "Victory"
	}

	center := widget.TextOpts.WidgetOpts(
		widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
	)

	title := widget.NewText(
		widget.TextOpts.Text(titleLabel, &face, white),
		center,
	)
	score := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Score: %d  (%ds x level %d)", g.finalScore, g.finalSeconds, g.finalLevel), &face, white),
		center,
	)
	countdown := widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("Restarting in %d...", g.arena.RestartSeconds), &face, gray),
		center,
	)
	g.countdownText = countdown

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(score)

	if len(g.lbEntries) > 0 {
		header := widget.NewText(
			widget.TextOpts.Text("Top Runs", &face, white),
			center,
		)
		panel.AddChild(header)
		for i, e := range g.lbEntries {
			line := widget.NewText(
				widget.TextOpts.Text(fmt.Sprintf("%2d. %-24s %6d", i+1, e.Name, e.Score), &face, gray),
				center,
			)
			panel.AddChild(line)
		}
	}

	panel.AddChild(countdown)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
