package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/obstacle"
)

// ObstacleInspector lists live obstacles in a paged table and shows details and actions for the
// selected one.
type ObstacleInspector struct {
	field     *field.Field
	pageSize  int
	page      int
	filter    string
	selected  field.ID
	hasSelect bool
}

func NewObstacleInspector(f *field.Field, pageSize int) *ObstacleInspector {
	return &ObstacleInspector{
		field:    f,
		pageSize: max(pageSize, 1),
	}
}

// Selected returns the obstacle picked in the table, if it is still in the field.
func (oi *ObstacleInspector) Selected() (field.ID, *obstacle.Obstacle, bool) {
	if !oi.hasSelect {
		return 0, nil, false
	}
	o, ok := oi.field.Get(oi.selected)
	if !ok {
		oi.hasSelect = false
		return 0, nil, false
	}
	return oi.selected, o, true
}

// Select marks id as the inspected obstacle.
func (oi *ObstacleInspector) Select(id field.ID) {
	oi.selected = id
	oi.hasSelect = true
}

type inspectorRow struct {
	id field.ID
	o  *obstacle.Obstacle
}

// rows returns the filtered obstacles in field order.
func (oi *ObstacleInspector) rows() []inspectorRow {
	filter := strings.ToLower(strings.TrimSpace(oi.filter))
	var rows []inspectorRow
	for id, o := range oi.field.All() {
		if filter != "" && !strings.Contains(o.Type().String(), filter) && !strings.Contains(o.State().String(), filter) {
			continue
		}
		rows = append(rows, inspectorRow{id: id, o: o})
	}
	return rows
}

func (oi *ObstacleInspector) Render(deltaTime float32) {
	if !imgui.BeginV("Obstacle Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.SetNextItemWidth(200)
	imgui.InputTextWithHint("##filter", "type or state", &oi.filter, imgui.InputTextFlagsNone, nil)

	rows := oi.rows()
	pages := max((len(rows)+oi.pageSize-1)/oi.pageSize, 1)
	oi.page = min(oi.page, pages-1)

	imgui.Text(fmt.Sprintf("Obstacles: %d", len(rows)))
	imgui.SameLine()
	if imgui.Button("<") && oi.page > 0 {
		oi.page--
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("Page %d/%d", oi.page+1, pages))
	imgui.SameLine()
	if imgui.Button(">") && oi.page < pages-1 {
		oi.page++
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ObstacleTable", 6, tableFlags, imgui.NewVec2(0, 220), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Trail")
		imgui.TableSetupColumn("Aura")
		imgui.TableSetupColumn("Burst")
		imgui.TableHeadersRow()

		start := oi.page * oi.pageSize
		end := min(start+oi.pageSize, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			isSelected := oi.hasSelect && oi.selected == row.id
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.id.Seq()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				oi.Select(row.id)
			}
			imgui.TableNextColumn()
			imgui.Text(row.o.Type().String())
			imgui.TableNextColumn()
			imgui.Text(row.o.State().String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.o.Trail().Len()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.o.Aura().Len()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.o.Collision().Len()))
		}

		imgui.EndTable()
	}

	if id, o, ok := oi.Selected(); ok {
		imgui.Separator()
		oi.renderDetails(id, o)
	}

	imgui.End()
}

func (oi *ObstacleInspector) renderDetails(id field.ID, o *obstacle.Obstacle) {
	pos := o.Position()
	imgui.Text(fmt.Sprintf("Obstacle %d (%s)", id.Seq(), o.Type()))
	imgui.BulletText(fmt.Sprintf("Position: (%.1f, %.1f)", pos.X, pos.Y))
	imgui.BulletText(fmt.Sprintf("Speed: %.1f", o.Speed()))
	imgui.BulletText(fmt.Sprintf("Rotation: %.1f / %.1f", o.Rotation(), o.OutlineRotation()))
	imgui.BulletText(fmt.Sprintf("Scale: %.3f", o.Scale()))
	imgui.BulletText(fmt.Sprintf("Trail motion: %s", o.Trail().Motion()))

	core := o.CoreColor()
	imgui.Text("Core")
	imgui.SameLine()
	drawList := imgui.WindowDrawList()
	at := imgui.CursorScreenPos()
	swatch := imgui.ColorU32Vec4(imgui.NewVec4(float32(core.R)/255, float32(core.G)/255, float32(core.B)/255, 1))
	drawList.AddRectFilled(at, imgui.NewVec2(at.X+40, at.Y+12), swatch)
	imgui.Text("")

	if imgui.Button("Collide") {
		o.TriggerCollisionEffect()
	}
	imgui.SameLine()
	if imgui.Button("Destroy") {
		o.TriggerDestroyEffect()
	}
	imgui.SameLine()
	if imgui.Button("Shoot") {
		o.DestroyImmediately()
	}
}
