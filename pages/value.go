package pages

import "strings"

// Block returns the block with the given id, or nil when the value is nil,
// has no blocks, or no block matches.
func (v *Value) Block(blockID string) *Block {
	if v == nil || len(v.Blocks) == 0 {
		return nil
	}
	for i := range v.Blocks {
		if v.Blocks[i].ID == blockID {
			return &v.Blocks[i]
		}
	}
	return nil
}

// BlockValue resolves a field inside a named block. An empty key returns
// the whole data object. Otherwise key is a dot-separated path into the
// block data, e.g. "cta.url"; a missing segment or a non-object value in
// the middle of the path resolves to nil rather than an error.
func (v *Value) BlockValue(blockID, key string) any {
	block := v.Block(blockID)
	if block == nil {
		return nil
	}
	if key == "" {
		if block.Data == nil {
			return nil
		}
		return block.Data
	}
	return dataGet(block.Data, key)
}

// BlockValue is a nil-safe convenience over the page's embedded value.
func (p *Page) BlockValue(blockID, key string) any {
	if p == nil || p.Value == nil {
		return nil
	}
	return p.Value.BlockValue(blockID, key)
}

// dataGet walks a dot-separated path through nested JSON objects. Both
// map[string]any and map[string]string intermediates are supported since
// decoders produce either; anything else terminates the walk.
func dataGet(data map[string]any, path string) any {
	if data == nil {
		return nil
	}
	segments := strings.Split(path, ".")
	var current any = data
	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil
			}
			current = next
		case map[string]string:
			next, ok := node[segment]
			if !ok {
				return nil
			}
			current = next
		default:
			return nil
		}
	}
	return current
}
