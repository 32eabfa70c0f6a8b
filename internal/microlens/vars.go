package microlens

var (
	Debug = false // set to true to tally terminals and draw the search grid
	PNG   = false // set to true to save a PNG sequence instead of an animated GIF
)
