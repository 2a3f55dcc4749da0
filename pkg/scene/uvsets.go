package scene

import "strings"

// UVSets reports the UV set names a mesh node offers, each counted once.
// Vertex or face-varying texCoord2f[] primvars contribute their own name
// (float2[] too when readFloat2 is set); float[] primvars prefixed with
// "u_" or "v_" contribute the name after the prefix.
func UVSets(n *Node, readFloat2 bool) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pv := range n.Primvars() {
		if pv.Interpolation != Vertex && pv.Interpolation != FaceVarying {
			continue
		}

		name := ""
		switch typ := pv.TypeName(); {
		case typ == TypeFloatArray && (strings.HasPrefix(pv.Name, "u_") || strings.HasPrefix(pv.Name, "v_")):
			name = pv.Name[2:]
		case typ == TypeTexCoord2fArray, readFloat2 && typ == TypeFloat2Array:
			name = pv.Name
		}
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
