package checklist

// BuiltinRegistry returns a registry seeded with the shipped
// questionnaires. Labels stay in the service language; option values
// are the stable machine keys answers and conditions are matched on.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(checkupChecklist())
	r.MustRegister(dhchChecklist())
	r.MustRegister(priemkaChecklist())
	return r
}

var okBadOther = []Option{
	{Value: "ok", Label: "Исправно"},
	{Value: "bad", Label: "Неисправно"},
	{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
}

func wiperSide(value, label string) Option {
	return Option{Value: value, Label: label, SubOptions: []Option{
		{Value: "smearing", Label: "Мажет"},
		{Value: "damaged", Label: "Повреждена"},
		{Value: "missing", Label: "Отсутствует"},
	}}
}

// checkupChecklist is the express acceptance checkup: one question per
// step, with detail sub-trees and a skip past the spare-wheel details.
func checkupChecklist() *Checklist {
	return &Checklist{
		ID:     "checkup",
		Title:  "Экспресс-осмотр",
		Policy: ActivateUnconditional,
		Sections: []Section{
			{
				ID:    "controls",
				Title: "Органы управления",
				Questions: []Question{
					{ID: "horn", Text: "Сигнал звукового тона", Kind: KindSingle, Options: okBadOther},
					{ID: "key_battery", Text: "Батарейка ключа", Kind: KindSingle, Options: []Option{
						{Value: "ok", Label: "Исправно"},
						{Value: "bad", Label: "Неисправно", SubOptions: []Option{
							{Value: "discharged", Label: "Разряжена"},
							{Value: "missing", Label: "Отсутствует"},
							{Value: "damaged", Label: "Повреждена"},
						}},
						{Value: "na", Label: "Не предусмотрено"},
						{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
					}},
				},
			},
			{
				ID:    "glass",
				Title: "Стекла и стеклоочистители",
				Questions: []Question{
					{ID: "windshield", Text: "Стекло лобовое", Kind: KindSingle, AllowPhoto: true, Options: []Option{
						{Value: "ok", Label: "Исправно"},
						{Value: "bad", Label: "Повреждено", AllowMultiple: true, SubOptions: []Option{
							{Value: "chips", Label: "Сколы"},
							{Value: "cracks", Label: "Трещины"},
						}},
						{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
					}},
					{ID: "wiper_front", Text: "Щетки стеклоочистителя переднего", Kind: KindSingle, Options: []Option{
						{Value: "ok", Label: "Исправно"},
						{Value: "bad", Label: "Неисправно", AllowMultiple: true, SubOptions: []Option{
							wiperSide("left", "Передняя левая"),
							wiperSide("right", "Передняя правая"),
						}},
						{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
					}},
				},
			},
			{
				ID:    "wheels",
				Title: "Колеса",
				Questions: []Question{
					{ID: "spare_wheel", Text: "Запасное колесо", Kind: KindSingle, Options: []Option{
						{Value: "ok", Label: "В наличии"},
						{Value: "bad", Label: "Требует внимания"},
						// no spare fitted: the state question below is moot
						{Value: "na", Label: "Не предусмотрено", SkipTo: "lighting"},
					}},
					{ID: "spare_wheel_state", Text: "Состояние запасного колеса", Kind: KindSingle, Options: okBadOther},
				},
			},
			{
				ID:    "lighting",
				Title: "Световые приборы",
				Questions: []Question{
					{ID: "headlights", Text: "Фары головного света", Kind: KindSingle, Options: okBadOther},
					{ID: "exterior_photo", Text: "Общее фото автомобиля", Kind: KindPhoto},
				},
			},
		},
	}
}

var fluidLevel = []Option{
	{Value: "below", Label: "Ниже уровня"},
	{Value: "half", Label: "25-50%"},
	{Value: "full", Label: "75-100%"},
	{Value: "above", Label: "Выше уровня"},
	{Value: "na", Label: "Не предусмотрено"},
	{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
}

// dhchChecklist is the chassis diagnostic. Only the general section is
// unconditionally active; the drive-type answer switches on exactly
// one of the axle sections.
func dhchChecklist() *Checklist {
	return &Checklist{
		ID:     "dhch",
		Title:  "Диагностика ходовой части",
		Policy: ActivateFirstOnly,
		Sections: []Section{
			{
				ID:    "general",
				Title: "Общий раздел",
				Questions: []Question{
					{ID: "engine_oil_level", Text: "Уровень масла ДВС", Kind: KindSingle, AllowPhoto: true, Options: fluidLevel},
					{ID: "brake_fluid_level", Text: "Уровень тормозной жидкости", Kind: KindSingle, AllowPhoto: true, Options: fluidLevel},
					{ID: "drive_type", Text: "Тип привода", Kind: KindSingle, Options: []Option{
						{Value: "fwd", Label: "Передний"},
						{Value: "rwd", Label: "Задний"},
						{Value: "awd", Label: "Полный"},
					}},
				},
			},
			{
				ID:        "fwd",
				Title:     "Передний привод",
				Condition: &Condition{DependsOn: "drive_type", Value: "fwd"},
				Questions: []Question{
					{ID: "fwd_cv_joints", Text: "ШРУСы передней оси", Kind: KindSingle, Options: okBadOther},
					{ID: "fwd_shock_absorbers", Text: "Амортизаторы передние", Kind: KindSingle, Options: okBadOther},
				},
			},
			{
				ID:        "rwd",
				Title:     "Задний привод",
				Condition: &Condition{DependsOn: "drive_type", Value: "rwd"},
				Questions: []Question{
					{ID: "rwd_driveshaft", Text: "Карданный вал", Kind: KindSingle, Options: okBadOther},
					{ID: "rwd_differential", Text: "Редуктор заднего моста", Kind: KindSingle, Options: okBadOther},
				},
			},
			{
				ID:        "awd",
				Title:     "Полный привод",
				Condition: &Condition{DependsOn: "drive_type", Value: "awd"},
				Questions: []Question{
					{ID: "awd_transfer_case", Text: "Раздаточная коробка", Kind: KindSingle, Options: okBadOther},
					{ID: "awd_rear_diff", Text: "Муфта подключения задней оси", Kind: KindSingle, Options: okBadOther},
				},
			},
		},
	}
}

// priemkaChecklist is the vehicle acceptance questionnaire: every
// section without a condition is visited.
func priemkaChecklist() *Checklist {
	return &Checklist{
		ID:     "priemka",
		Title:  "Приемка автомобиля",
		Policy: ActivateUnconditional,
		Sections: []Section{
			{
				ID:    "general",
				Title: "Общий раздел",
				Questions: []Question{
					{ID: "body_condition", Text: "Состояние кузова", Kind: KindSingle, AllowPhoto: true, Options: []Option{
						{Value: "clean", Label: "Без замечаний"},
						{Value: "damaged", Label: "Есть повреждения", AllowMultiple: true, SubOptions: []Option{
							{Value: "scratches", Label: "Царапины"},
							{Value: "dents", Label: "Вмятины"},
							{Value: "rust", Label: "Коррозия"},
						}},
						{Value: "other", Label: "Иное (указать текстом)", RequiresText: true},
					}},
					{ID: "interior_condition", Text: "Состояние салона", Kind: KindSingle, AllowText: true, Options: okBadOther},
				},
			},
			{
				ID:    "documents",
				Title: "Документы и комплектность",
				Questions: []Question{
					{ID: "service_book", Text: "Сервисная книжка", Kind: KindSingle, Options: []Option{
						{Value: "present", Label: "В наличии"},
						{Value: "missing", Label: "Отсутствует"},
					}},
					{ID: "owner_notes", Text: "Замечания владельца", Kind: KindText},
				},
			},
			{
				ID:        "damage",
				Title:     "Фиксация повреждений",
				Condition: &Condition{DependsOn: "body_condition", Value: "damaged"},
				Questions: []Question{
					{ID: "damage_photo", Text: "Фото повреждений", Kind: KindPhoto},
				},
			},
		},
	}
}
