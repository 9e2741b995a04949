package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"officegrid/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	envelopeSchema := compile("envelope.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	roomJoinedSchema := compile("roomJoined.schema.json")

	var envelope any
	_ = json.Unmarshal([]byte(`{
	  "event":"move",
	  "data":{"from":[0,0],"to":[3,1]}
	}`), &envelope)
	validate(envelopeSchema, envelope)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "rooms":[
	    {"id":"lobby","name":"Lobby","nbCharacters":2},
	    {"id":"studio","name":"Studio","nbCharacters":0}
	  ],
	  "items":{"chair":{"name":"chair","size":[1,1]}}
	}`), &welcome)
	validate(welcomeSchema, welcome)

	var roomJoined any
	_ = json.Unmarshal([]byte(`{
	  "map":{
	    "gridDivision":2,
	    "size":[7,7],
	    "items":[
	      {"name":"deskComputer","gridPosition":[0,0],"rotation":1,"size":[3,2]},
	      {"name":"rugSquare","gridPosition":[5,5],"size":[4,4],"walkable":true}
	    ]
	  },
	  "characters":[
	    {"id":"U000001","session":42,"position":[3,3],"path":[[3,3],[4,4]],"avatarUrl":"a.glb"},
	    {"id":"U000002","session":7,"position":[0,2],"avatarUrl":"b.glb","canUpdateRoom":true}
	  ],
	  "id":"U000001"
	}`), &roomJoined)
	validate(roomJoinedSchema, roomJoined)
}

// TestSchemas_MatchEncoder round-trips real encoder output through the schemas
// so the documents cannot drift from the wire types.
func TestSchemas_MatchEncoder(t *testing.T) {
	schema, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "roomJoined.schema.json"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ev := protocol.RoomJoinedEvent{
		Map: protocol.MapData{
			GridDivision: 2,
			Size:         protocol.Vec2{7, 7},
			Items: []protocol.PlacedItem{
				{Name: "chair", GridPosition: protocol.Vec2{1, 1}, Size: protocol.Vec2{1, 1}},
			},
		},
		Characters: []protocol.Character{
			{ID: "U000001", Session: 3, Position: protocol.Vec2{2, 2}, AvatarURL: "a.glb"},
		},
		ID: "U000001",
	}
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("encoder output rejected by schema: %v", err)
	}
}
