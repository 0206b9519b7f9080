package profillog

import "github.com/Kargones/profillog/internal/entity/logentry"

// Group — записи с общим ключом группировки.
type Group struct {
	Key     string           `json:"key"`
	Entries []logentry.Entry `json:"entries"`
}

// Groups — упорядоченный набор групп.
// Порядок для GroupByLevel — по возрастанию важности,
// для GroupByMonth — по первому появлению месяца в хранилище.
type Groups []Group

// Keys возвращает ключи в порядке групп.
func (g Groups) Keys() []string {
	keys := make([]string, len(g))
	for i, group := range g {
		keys[i] = group.Key
	}
	return keys
}

// Get возвращает записи группы key.
func (g Groups) Get(key string) ([]logentry.Entry, bool) {
	for _, group := range g {
		if group.Key == key {
			return group.Entries, true
		}
	}
	return nil, false
}

// Len возвращает суммарное число записей во всех группах.
func (g Groups) Len() int {
	n := 0
	for _, group := range g {
		n += len(group.Entries)
	}
	return n
}

func groupByLevel(entries []logentry.Entry) Groups {
	levels := logentry.Severities()
	groups := make(Groups, len(levels))
	for i, level := range levels {
		groups[i] = Group{Key: level.String(), Entries: []logentry.Entry{}}
	}
	for _, e := range entries {
		groups[int(e.Level())].Entries = append(groups[int(e.Level())].Entries, e)
	}
	return groups
}

func groupByMonth(entries []logentry.Entry, key func(logentry.Entry) string) Groups {
	groups := Groups{}
	index := make(map[string]int)
	for _, e := range entries {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
