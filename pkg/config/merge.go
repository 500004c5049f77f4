package config

// Merge накладывает overlay на base и возвращает новое дерево.
// Вложенные таблицы сливаются рекурсивно, остальные значения (включая списки)
// из overlay заменяют значения base. Входные карты не изменяются.
func Merge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}

	for k, ov := range overlay {
		bv, ok := out[k]
		if !ok {
			out[k] = ov
			continue
		}

		bm, baseIsMap := bv.(map[string]any)
		om, overIsMap := ov.(map[string]any)
		if baseIsMap && overIsMap {
			out[k] = Merge(bm, om)
			continue
		}
		out[k] = ov
	}

	return out
}
