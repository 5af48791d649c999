package querycache

import "fmt"

// Entity is the kind of collection stored under a key
type Entity string

const (
	EntityCourses    Entity = "courses"
	EntityCourse     Entity = "course"
	EntitySections   Entity = "sections"
	EntityLessons    Entity = "lessons"
	EntityTool       Entity = "tool"
	EntityCategories Entity = "categories"
)

// Key identifies a cached collection by entity type and scope id,
// e.g. sections of course "7" is Key{EntitySections, "7"}.
type Key struct {
	Entity Entity
	Scope  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Entity, k.Scope)
}

// Prefix matches a group of keys. An empty Scope matches every scope of the entity,
// an empty Entity matches every key.
type Prefix struct {
	Entity Entity
	Scope  string
}

// Matches reports whether the key belongs to the prefix
func (p Prefix) Matches(k Key) bool {
	if p.Entity != "" && p.Entity != k.Entity {
		return false
	}
	return p.Scope == "" || p.Scope == k.Scope
}

// Exact returns the prefix matching only this key
func (k Key) Exact() Prefix {
	return Prefix{Entity: k.Entity, Scope: k.Scope}
}

// All matches every entry of the cache
var All = Prefix{}

func CoursesKey(academyID string) Key  { return Key{Entity: EntityCourses, Scope: academyID} }
func CourseKey(courseID string) Key    { return Key{Entity: EntityCourse, Scope: courseID} }
func SectionsKey(courseID string) Key  { return Key{Entity: EntitySections, Scope: courseID} }
func LessonsKey(sectionID string) Key  { return Key{Entity: EntityLessons, Scope: sectionID} }
func ToolKey(lessonID string) Key      { return Key{Entity: EntityTool, Scope: lessonID} }
func CategoriesKey() Key               { return Key{Entity: EntityCategories} }
