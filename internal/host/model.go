package host

// Model metadata keys.
const (
	MetaInstanceName = "instanceName"
	MetaFullPath     = "fullPath"
	MetaLabel        = "label"
	MetaModelName    = "modelName"
	MetaProd         = "prod"
	MetaUVSet        = "uvSet"
)

// ModelNode is what model metadata is read from. *scene.Node satisfies it.
type ModelNode interface {
	Name() string
	Path() string
	Metadata() map[string]string
}

// ModelData describes the model a set of meshes was loaded from.
type ModelData struct {
	InstanceName string
	FullPath     string
	Label        string
	ModelName    string
	Prod         string
	UVSet        string
}

// NewModelData reads model metadata. Names default to the node name; a
// "prod" metadata entry on the node fills Prod.
func NewModelData(n ModelNode, uvSet string) ModelData {
	name := n.Name()
	return ModelData{
		InstanceName: name,
		FullPath:     n.Path(),
		Label:        name,
		ModelName:    name,
		Prod:         n.Metadata()[MetaProd],
		UVSet:        uvSet,
	}
}

// Metadata returns the model data as entity metadata.
func (d ModelData) Metadata() map[string]string {
	return map[string]string{
		MetaInstanceName: d.InstanceName,
		MetaFullPath:     d.FullPath,
		MetaLabel:        d.Label,
		MetaModelName:    d.ModelName,
		MetaProd:         d.Prod,
		MetaUVSet:        d.UVSet,
	}
}
