package model

import "sort"

// ResultSet は抽出されたAPIパスの重複なし集合です
type ResultSet map[string]struct{}

// NewResultSet は与えられたパスを含む ResultSet を作成します
func NewResultSet(paths ...string) ResultSet {
	rs := make(ResultSet, len(paths))
	for _, p := range paths {
		rs.Add(p)
	}
	return rs
}

// Add はパスを追加します
func (rs ResultSet) Add(path string) {
	rs[path] = struct{}{}
}

// Merge は other の全要素を rs に追加します
func (rs ResultSet) Merge(other ResultSet) {
	for p := range other {
		rs[p] = struct{}{}
	}
}

// Len は要素数を返します
func (rs ResultSet) Len() int {
	return len(rs)
}

// Sorted はバイト順に並べた要素のスライスを返します
func (rs ResultSet) Sorted() []string {
	paths := make([]string, 0, len(rs))
	for p := range rs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
