package instrument

// itemTable is the full LEP-88 instrument. Auxiliary items (main=false) feed
// the chronotype and avoidance indices instead of a dimension score.
var itemTable = []ItemDefinition{
	// Attention Architecture (10 main + 6 auxiliary chronotype items)
	item("A1", DimAttention, true, false, "focus_duration"),
	item("A2", DimAttention, true, true, "distractibility"),
	item("A3", DimAttention, true, false, "task_reentry"),
	item("A4", DimAttention, true, false, "sequential_work_style"),
	item("A5", DimAttention, true, true, "task_switching_cost"),
	item("A6", DimAttention, true, false, "break_planning"),
	item("A7", DimAttention, true, false, "flow_proneness"),
	item("A8", DimAttention, false, false, "chronotype_morning"),
	item("A9", DimAttention, false, false, "chronotype_evening"),
	item("A10", DimAttention, true, true, "micro_break_need"),
	item("A11", DimAttention, true, false, "concentration_self_monitoring"),
	item("A12", DimAttention, true, false, "focus_under_stress"),
	item("A13", DimAttention, false, false, "chronotype_weekday_bedtime"),
	item("A14", DimAttention, false, false, "chronotype_weekday_wake_time"),
	item("A15", DimAttention, false, false, "chronotype_morning_peak"),
	item("A16", DimAttention, false, false, "chronotype_evening_peak"),

	// Sensory Processing (13 main)
	item("S1", DimSensory, true, false, "noise_sensitivity"),
	item("S2", DimSensory, true, false, "light_sensitivity"),
	item("S3", DimSensory, true, false, "detail_perception"),
	item("S4", DimSensory, true, false, "environment_order"),
	item("S5", DimSensory, true, false, "recovery_after_stimulation"),
	item("S6", DimSensory, true, true, "sensation_seeking"),
	item("S7", DimSensory, true, true, "music_positive_effect"),
	item("S8", DimSensory, true, false, "music_distraction"),
	item("S9", DimSensory, true, false, "stimulus_coping_strategies"),
	item("S10", DimSensory, true, true, "novel_stimuli_positive_effect"),
	item("S11", DimSensory, true, false, "multisensory_fatigue"),
	item("S12", DimSensory, true, false, "active_environment_design"),
	item("S13", DimSensory, true, false, "multisensory_learning_preference"),

	// Social Energetics (13 main)
	item("SO1", DimSocial, true, false, "social_recharge"),
	item("SO2", DimSocial, true, true, "solo_study_preference"),
	item("SO3", DimSocial, true, true, "group_work_energy_drain"),
	item("SO4", DimSocial, true, false, "discussion_benefit"),
	item("SO5", DimSocial, true, true, "recovery_in_solitude"),
	item("SO6", DimSocial, true, false, "small_familiar_groups"),
	item("SO7", DimSocial, true, true, "reticence_large_groups"),
	item("SO8", DimSocial, true, false, "live_session_motivation"),
	item("SO9", DimSocial, true, true, "asynchronous_preference"),
	item("SO10", DimSocial, true, false, "explaining_as_energy_source"),
	item("SO11", DimSocial, true, false, "social_planning"),
	item("SO12", DimSocial, true, false, "social_support_benefit"),
	item("SO13", DimSocial, true, true, "isolation_when_overwhelmed"),

	// Executive Function & Need for Structure (16 main)
	item("E1", DimExecutive, true, false, "subtask_planning"),
	item("E2", DimExecutive, true, true, "structure_need_at_start"),
	item("E3", DimExecutive, true, true, "overview_many_tasks"),
	item("E4", DimExecutive, true, false, "organization_tool_use"),
	item("E5", DimExecutive, true, false, "preference_given_structure"),
	item("E6", DimExecutive, true, false, "flexible_plan_use"),
	item("E7", DimExecutive, true, true, "spontaneous_improvisation"),
	item("E8", DimExecutive, true, false, "persistence"),
	item("E9", DimExecutive, true, false, "reorganization_after_interruptions"),
	item("E10", DimExecutive, true, false, "quality_criteria_need"),
	item("E11", DimExecutive, true, true, "lost_in_details"),
	item("E12", DimExecutive, true, false, "deadline_coordination"),
	item("E13", DimExecutive, true, true, "working_memory_multitasking"),
	item("E14", DimExecutive, true, true, "instruction_complexity"),
	item("E15", DimExecutive, true, false, "learning_process_monitoring"),
	item("E16", DimExecutive, true, false, "difficulty_estimation"),

	// Motivation Architecture (16 main + 2 auxiliary avoidance items)
	item("M1", DimMotivation, true, false, "intrinsic_motivation"),
	item("M2", DimMotivation, false, false, "avoidance_orientation"),
	item("M3", DimMotivation, true, false, "goal_orientation"),
	item("M4", DimMotivation, true, false, "progress_display"),
	item("M5", DimMotivation, true, false, "feedback_need"),
	item("M6", DimMotivation, true, false, "feedback_detail_level"),
	item("M7", DimMotivation, true, false, "feedback_tone_positive"),
	item("M8", DimMotivation, true, false, "feedback_tone_critical"),
	item("M9", DimMotivation, false, false, "procrastination"),
	item("M10", DimMotivation, true, false, "interest_flow"),
	item("M11", DimMotivation, true, false, "extrinsic_reward"),
	item("M12", DimMotivation, true, false, "persistence_without_feedback"),
	item("M13", DimMotivation, true, true, "intrinsic_motivation_reversed"),
	item("M14", DimMotivation, true, true, "feedback_dependence_reversed"),
	item("M15", DimMotivation, true, true, "goal_orientation_reversed"),
	item("M16", DimMotivation, true, true, "extrinsic_dependence"),
	item("M17", DimMotivation, true, false, "implementation_intentions"),
	item("M18", DimMotivation, true, false, "commitment_strategies"),

	// Autonomic Regulation / Stress & Vigilance (12 main)
	item("R1", DimRegulation, true, true, "subjective_stress_level"),
	item("R2", DimRegulation, true, true, "evening_wind_down"),
	item("R3", DimRegulation, true, true, "exhaustion_after_learning"),
	item("R4", DimRegulation, true, true, "stress_from_unexpected"),
	item("R5", DimRegulation, true, false, "bodily_stress_awareness"),
	item("R6", DimRegulation, true, false, "short_break_regulation"),
	item("R7", DimRegulation, true, false, "evening_routine_regeneration"),
	item("R8", DimRegulation, true, false, "pressure_as_performance_factor"),
	item("R9", DimRegulation, true, true, "sleep_under_stress"),
	item("R10", DimRegulation, true, false, "load_compensation"),
	item("R11", DimRegulation, true, false, "prioritization_under_stress"),
	item("R12", DimRegulation, true, false, "load_limit_awareness"),
}

func item(code string, dim Dimension, main, reverse bool, facet string) ItemDefinition {
	return ItemDefinition{
		Code:               code,
		Dimension:          dim,
		IncludeInMainScale: main,
		ReverseScored:      reverse,
		Facet:              facet,
	}
}

// Fixed auxiliary item sets consumed by the index computations.
var (
	// MorningItems and EveningItems form the chronotype index.
	MorningItems = []string{"A8", "A13", "A14", "A15"}
	EveningItems = []string{"A9", "A16"}

	// AvoidanceItems form the optional motivation-avoidance index.
	AvoidanceItems = []string{"M2", "M9"}
)
