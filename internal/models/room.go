package models

// Room is a public chat room in the directory. Rooms are seeded at startup;
// there is no dynamic creation path.
type Room struct {
	// ID is a short slug ("general", "usa").
	ID string `gorm:"primaryKey" json:"id"`
	// Name is the human-readable room title.
	Name string `gorm:"type:text;not null" json:"name"`
	// Category is "topic" or "country".
	Category    string `gorm:"type:text;not null" json:"category"`
	Description string `gorm:"type:text" json:"description"`
}

// SeedRooms is the initial room directory written when the table is empty.
var SeedRooms = []Room{
	{ID: "general", Name: "General Chat", Category: "topic", Description: "Talk about anything and everything."},
	{ID: "tech", Name: "Tech Talk", Category: "topic", Description: "Gadgets, coding, and future tech."},
	{ID: "gaming", Name: "Gaming", Category: "topic", Description: "LFG, strats, and game discussions."},
	{ID: "music", Name: "Music Lounge", Category: "topic", Description: "Share your favorite tunes and artists."},
	{ID: "movies", Name: "Movies & TV", Category: "topic", Description: "Discuss the latest blockbusters and series."},
	{ID: "crypto", Name: "Crypto & Finance", Category: "topic", Description: "To the moon!"},
	{ID: "usa", Name: "USA", Category: "country", Description: "Chat with people from the United States."},
	{ID: "uk", Name: "United Kingdom", Category: "country", Description: "Cheers mate!"},
	{ID: "india", Name: "India", Category: "country", Description: "Namaste! Connect with India."},
	{ID: "can", Name: "Canada", Category: "country", Description: "Eh? Friendly chat from the north."},
	{ID: "aus", Name: "Australia", Category: "country", Description: "G'day! Down under chat."},
}
