package host

// PropertyType is the kind of editor a property is shown with.
type PropertyType int

const (
	PropertyFloat PropertyType = iota
	PropertyColor
)

func (t PropertyType) String() string {
	switch t {
	case PropertyFloat:
		return "float"
	case PropertyColor:
		return "color"
	default:
		return "unknown"
	}
}

// NumberType selects between a spin box and a slider for numeric
// properties.
type NumberType int

const (
	NumberScroller NumberType = iota
	NumberSlider
)

// Property is a single user editable setting.
type Property struct {
	Name        string
	Description string
	Type        PropertyType
	NumberType  NumberType
	Min         float64
	Max         float64
	Step        float64
}

// Properties is an ordered list of properties for the host UI.
type Properties struct {
	props []*Property
}

func NewProperties() *Properties {
	return &Properties{}
}

func (p *Properties) add(prop *Property) *Property {
	p.props = append(p.props, prop)
	return prop
}

// AddFloat adds a float property edited with a spin box.
func (p *Properties) AddFloat(name, description string, min, max, step float64) *Property {
	return p.add(&Property{
		Name:        name,
		Description: description,
		Type:        PropertyFloat,
		NumberType:  NumberScroller,
		Min:         min,
		Max:         max,
		Step:        step,
	})
}

// AddFloatSlider adds a float property edited with a slider.
func (p *Properties) AddFloatSlider(name, description string, min, max, step float64) *Property {
	prop := p.AddFloat(name, description, min, max, step)
	prop.NumberType = NumberSlider
	return prop
}

// AddColor adds a packed RGBA color property.
func (p *Properties) AddColor(name, description string) *Property {
	return p.add(&Property{
		Name:        name,
		Description: description,
		Type:        PropertyColor,
	})
}

// Get returns the property with the given name, or nil.
func (p *Properties) Get(name string) *Property {
	for _, prop := range p.props {
		if prop.Name == name {
			return prop
		}
	}
	return nil
}

// List returns the properties in declaration order.
func (p *Properties) List() []*Property {
	out := make([]*Property, len(p.props))
	copy(out, p.props)
	return out
}
