package render

import (
	"sort"
	"strings"
)

// logo is an ASCII mark with its accent color (ANSI 256 index)
type logo struct {
	art   []string
	color string
}

var logos = map[string]logo{
	"linux": {color: "15", art: []string{
		`    .--.    `,
		`   |o_o |   `,
		`   |:_/ |   `,
		`  //   \ \  `,
		` (|     | ) `,
		`/'\_   _/'\ `,
		`\___)=(___/ `,
	}},
	"ubuntu": {color: "208", art: []string{
		`         _     `,
		`     ---(_)    `,
		` _/  ---  \    `,
		`(_) |   |  |   `,
		`  \  --- _/    `,
		`     ---(_)    `,
	}},
	"debian": {color: "161", art: []string{
		`  _____   `,
		` /  __ \  `,
		`|  /    | `,
		`|  \___-  `,
		`-_        `,
		`  --_     `,
	}},
	"arch": {color: "33", art: []string{
		`      /\      `,
		`     /  \     `,
		`    /\   \    `,
		`   /      \   `,
		`  /   ,,   \  `,
		` /   |  |  -\ `,
		`/_-''    ''-_\`,
	}},
	"fedora": {color: "27", art: []string{
		`      _____  `,
		`     /   __)\`,
		`     |  /  \ \`,
		`  ___|  |__/ /`,
		` / (_    _)_/ `,
		`/ /  |  |     `,
		`\ \__/  |     `,
		` \(_____/     `,
	}},
	"darwin": {color: "10", art: []string{
		"        .:'    ",
		"    __ :'__    ",
		" .'`  `-'  ``. ",
		":          .-' ",
		":         :    ",
		" :         `-; ",
		"  `.__.-.__.'  ",
	}},
	"windows": {color: "39", art: []string{
		`################  ################`,
		`################  ################`,
		`################  ################`,
		`                                  `,
		`################  ################`,
		`################  ################`,
		`################  ################`,
	}},
}

// logoAliases maps OS names reported by the host to a logo key
var logoAliases = []struct {
	match string
	key   string
}{
	{"windows", "windows"},
	{"darwin", "darwin"},
	{"mac", "darwin"},
	{"ubuntu", "ubuntu"},
	{"debian", "debian"},
	{"arch", "arch"},
	{"manjaro", "arch"},
	{"fedora", "fedora"},
}

// LogoNames lists the keys accepted by the logo setting
func LogoNames() []string {
	names := make([]string, 0, len(logos))
	for name := range logos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectLogo returns the logo named by key, or one matching osName when
// key is "auto" or unknown
func selectLogo(key, osName string) logo {
	if l, ok := logos[strings.ToLower(key)]; ok {
		return l
	}

	name := strings.ToLower(osName)
	for _, alias := range logoAliases {
		if strings.Contains(name, alias.match) {
			return logos[alias.key]
		}
	}
	return logos["linux"]
}
