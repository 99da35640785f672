package universe

import "sort"

//Template represents the seeding template which can be used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//DefaultTemplates are available in every new universe
var DefaultTemplates = []Template{
	{"sample", "the sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}},
	{"block", "still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
	{"blinker", "oscillator with period 2", [][]int{{1, 2}, {2, 2}, {3, 2}}},
	{"glider", "spaceship moving down-right", [][]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}},
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates.Lock()
	u.templates.m[tmpl.Name] = tmpl
	u.templates.Unlock()
}

//Templates returns the available templates sorted by name
func (u *BaseUniverse) Templates() []Template {
	u.templates.RLock()
	list := make([]Template, 0, len(u.templates.m))
	for _, t := range u.templates.m {
		list = append(list, t)
	}
	u.templates.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

//SettleTemplate populates the universe with the seeding template
//returns false for unknown templates or while the universe is running
func (u *BaseUniverse) SettleTemplate(name string) bool {
	u.templates.RLock()
	tmpl, ok := u.templates.m[name]
	u.templates.RUnlock()
	if !ok {
		return false
	}
	return u.Settle(tmpl.Coordinates)
}
