package dataset

import _ "embed"

//go:embed questions.json
var questionsJSON []byte

//go:embed profiles.json
var profilesJSON []byte
