package ws

// client → server
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

type ChoicePayload struct {
	RoomCode string `json:"room_code"`
	Symbol   string `json:"symbol"` // rock | paper | scissors
}

// server → client
type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

type RoomJoinedPayload struct {
	RoomCode string `json:"room_code"`
	Seat     int    `json:"seat"`
}

type RoundStartedPayload struct {
	RoomCode string `json:"room_code"`
	Round    int    `json:"round"`
}

type RoundResultPayload struct {
	RoomCode       string `json:"room_code"`
	Round          int    `json:"round"`
	Winner         string `json:"winner"` // tie | seat1 | seat2
	You            string `json:"you"`    // win | lose | draw
	YourSymbol     string `json:"your_symbol"`
	OpponentSymbol string `json:"opponent_symbol"`
	Scores         [2]int `json:"scores"`
}

type GameOverPayload struct {
	RoomCode string `json:"room_code"`
	Winner   string `json:"winner"` // seat1 | seat2
	Scores   [2]int `json:"scores"`
	Rounds   int    `json:"rounds"`
}

type OpponentLeftPayload struct {
	RoomCode string `json:"room_code"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
