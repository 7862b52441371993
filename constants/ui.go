package constants

// Cell palette, indexed by cell (row-major)
var CellColors = [CellCount]int32{
	0xFF5252, // red
	0x4CAF50, // green
	0x2196F3, // blue
	0xFFEB3B, // yellow
	0x9C27B0, // purple
	0xFF9800, // orange
	0x00BCD4, // cyan
	0x795548, // brown
	0x607D8B, // blue grey
}

// Screen colors
const (
	BackgroundColor     int32 = 0x121212
	TextColor           int32 = 0xFFFFFF
	DimTextColor        int32 = 0x757575
	ActiveCellColor     int32 = 0xFFFFFF
	SelectedButtonColor int32 = 0x2196F3
	StartButtonColor    int32 = 0x4CAF50
	ResetButtonColor    int32 = 0xF44336
	FailureBoxColor     int32 = 0xB71C1C
)

// Layout dimensions in terminal cells
const (
	CellWidth      = 10
	CellHeight     = 4
	CellGapX       = 2
	CellGapY       = 1
	ButtonWidth    = 13
	DifficultyGap  = 2
	LayoutRows     = 23
	FailureBoxPadX = 3
)

// Text
const (
	TitleText       = "G E N I U S"
	StartLabel      = "Start"
	ResetLabel      = "Reset"
	HintIdle        = "Enter: start  e/m/h: difficulty  q: quit"
	HintShowing     = "Watch the sequence..."
	HintAwaiting    = "Your turn: 1-9 or click"
	FailureTitle    = "Wrong sequence!"
	FailureTryAgain = "Enter: try again"
)
